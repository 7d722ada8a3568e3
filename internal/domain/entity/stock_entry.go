package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del ledger de stock.
const (
	EntryTypePurchase   = "purchase"   // entrada de stock (o alta de una unidad single)
	EntryTypeSale       = "sale"       // salida por venta
	EntryTypeReturn     = "return"     // devolución de cliente (restaura stock)
	EntryTypeReversal   = "reversal"   // anulación de una venta completa (restaura stock)
	EntryTypeAdjustment = "adjustment" // corrección manual, delta con signo
)

// StockEntry es una fila inmutable del ledger: nunca se actualiza ni se borra.
// La única vía para cambiar cantidad/estado de un producto es crear un asiento.
// Invariante: la suma con signo de los asientos de un producto es su cantidad actual.
type StockEntry struct {
	ID          string
	ProductID   string
	Quantity    int // positivo = entrada, negativo = salida
	EntryType   string
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal // |Quantity| * UnitPrice
	ReferenceID string          // ej. SALE-FSL2025001, REVERSE-FSL2025001
	Notes       string
	CreatedBy   string // actor; vacío = sistema
	CreatedAt   time.Time
}

// IsStockIn indica si el asiento suma stock.
func (e *StockEntry) IsStockIn() bool { return e.Quantity > 0 }

// AbsoluteQuantity devuelve la magnitud del movimiento.
func (e *StockEntry) AbsoluteQuantity() int {
	if e.Quantity < 0 {
		return -e.Quantity
	}
	return e.Quantity
}
