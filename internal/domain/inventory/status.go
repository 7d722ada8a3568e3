// Package inventory contiene las reglas puras del ledger de stock: derivación
// de estado y transición de cantidad por tipo de asiento. Son funciones puras
// (servicio de dominio); la persistencia y el bloqueo de filas viven en la capa
// de aplicación.
package inventory

import (
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// LowStockThreshold es el umbral de stock bajo para artículos bulk.
const LowStockThreshold = 5

// DeriveStatus deriva el estado de un producto desde (tipo de artículo,
// cantidad, estado actual). Para single el estado "sold" es pegajoso: una vez
// alcanzado no vuelve a "available" por recomputación, solo por un asiento
// return/reversal explícito (ver Transition).
//
//	single: quantity > 0 -> available, quantity == 0 -> sold
//	bulk:   quantity > 5 -> available, 1..5 -> lowstock, 0 -> outofstock
func DeriveStatus(itemKind string, quantity int, currentStatus string) string {
	if itemKind == entity.ItemKindSingle {
		if currentStatus == entity.StatusSold {
			return entity.StatusSold
		}
		if quantity > 0 {
			return entity.StatusAvailable
		}
		return entity.StatusSold
	}
	switch {
	case quantity > LowStockThreshold:
		return entity.StatusAvailable
	case quantity >= 1:
		return entity.StatusLowStock
	default:
		return entity.StatusOutOfStock
	}
}

// Transition calcula (cantidad, estado) resultantes de aplicar un asiento.
// delta lleva signo; la magnitud se usa según el tipo de asiento:
//
//	purchase/return/reversal: single fuerza (1, available); bulk suma |delta|.
//	sale: single fuerza (0, sold) incondicionalmente; bulk resta |delta|.
//	adjustment: suma el delta con signo.
//
// ValidateEntry garantiza que ninguna salida excede el stock, así la cantidad
// resultante siempre iguala la suma con signo del ledger.
func Transition(itemKind string, currentQty int, currentStatus, entryType string, delta int) (int, string) {
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	var qty int
	switch entryType {
	case entity.EntryTypePurchase, entity.EntryTypeReturn, entity.EntryTypeReversal:
		if itemKind == entity.ItemKindSingle {
			// La restauración explícita rompe el estado pegajoso.
			return 1, entity.StatusAvailable
		}
		qty = currentQty + abs
	case entity.EntryTypeSale:
		if itemKind == entity.ItemKindSingle {
			return 0, entity.StatusSold
		}
		qty = currentQty - abs
		if qty < 0 {
			qty = 0
		}
	case entity.EntryTypeAdjustment:
		qty = currentQty + delta
		if qty < 0 {
			qty = 0 // inalcanzable tras ValidateEntry; piso de seguridad
		}
	default:
		qty = currentQty
	}
	return qty, DeriveStatus(itemKind, qty, currentStatus)
}

// ValidateEntry valida un asiento antes de tomar el bloqueo de escritura.
// hasEntries indica si el producto ya tiene asientos en el ledger (el primer
// purchase de un single está exento de la protección anti-reposición).
func ValidateEntry(itemKind string, currentQty int, hasEntries bool, entryType string, delta int) error {
	if delta == 0 {
		return domain.ErrInvalidInput
	}
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	switch entryType {
	case entity.EntryTypePurchase, entity.EntryTypeReturn, entity.EntryTypeReversal,
		entity.EntryTypeSale, entity.EntryTypeAdjustment:
	default:
		return domain.ErrInvalidInput
	}

	if itemKind == entity.ItemKindSingle {
		if (entryType == entity.EntryTypePurchase || entryType == entity.EntryTypeReturn ||
			entryType == entity.EntryTypeReversal) && abs != 1 {
			return domain.ErrInvalidInput
		}
		// Un single ya asentado no admite otro purchase: el estado sold solo
		// lo rompen return/reversal. Para otra unidad, crear otro registro.
		if entryType == entity.EntryTypePurchase && hasEntries {
			return domain.ErrCannotRestock
		}
	}

	if entryType == entity.EntryTypeSale && abs > currentQty {
		return domain.ErrInsufficientStock
	}
	// Un ajuste negativo nunca puede dejar la suma del ledger por debajo de la
	// cantidad real: se rechaza en vez de recortarse.
	if entryType == entity.EntryTypeAdjustment && delta < 0 && -delta > currentQty {
		return domain.ErrInsufficientStock
	}
	return nil
}
