// Package sequence implementa el asignador de secuencias: valores enteros
// estrictamente crecientes por scope, sin duplicados bajo concurrencia
// arbitraria. Los huecos son benignos (transacciones abortadas); los
// duplicados, nunca.
package sequence

import (
	"fmt"
	"time"

	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// ReceiptScope es el scope global del contador de recibos.
const ReceiptScope = "receipt"

// SaleScope devuelve el scope del contador de ventas para un año calendario.
func SaleScope(year int) string { return fmt.Sprintf("sale:%d", year) }

// NextInTx entrega el siguiente valor del contador scopeKey usando el
// repositorio atado a la transacción del caller: asegura la fila, la bloquea
// (SELECT FOR UPDATE), incrementa en memoria y persiste. El bloqueo se
// mantiene hasta el commit; si la transacción aborta, el incremento se
// revierte completo y el caller debe reintentar desde cero, nunca reutilizar
// un valor retenido.
func NextInTx(seqRepo repository.SequenceRepository, scopeKey string) (int64, error) {
	if err := seqRepo.EnsureScope(scopeKey); err != nil {
		return 0, fmt.Errorf("asegurar scope %q: %w", scopeKey, err)
	}
	counter, err := seqRepo.GetForUpdate(scopeKey)
	if err != nil {
		return 0, fmt.Errorf("bloquear contador %q: %w", scopeKey, err)
	}
	counter.Counter++
	if err := seqRepo.Update(counter); err != nil {
		return 0, fmt.Errorf("persistir contador %q: %w", scopeKey, err)
	}
	return counter.Counter, nil
}

// FormatSaleID arma el identificador de venta: FSL{año}{consecutivo:03d}.
// Ej.: FSL2025001, FSL2025002.
func FormatSaleID(year int, n int64) string {
	return fmt.Sprintf("FSL%d%03d", year, n)
}

// FormatReceiptNumber arma el número de recibo con cero-padding a 4 dígitos.
func FormatReceiptNumber(n int64) string {
	return fmt.Sprintf("%04d", n)
}

// YearOf devuelve el año calendario de t (scope anual de ventas).
func YearOf(t time.Time) int { return t.Year() }
