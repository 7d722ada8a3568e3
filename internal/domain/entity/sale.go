package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa UNA transacción de cliente (no un ítem).
// Se crea una vez y solo muta para: agregar ítems, fijar el número de recibo
// (una sola vez) y marcarse como reversada (una sola vez). Los totales se
// recalculan siempre desde los ítems, nunca se capturan a mano.
type Sale struct {
	SaleID   string // FSL{año}{consecutivo}, ej. FSL2025001
	SellerID string
	SaleDate time.Time

	// Datos del comprador (mismos para todos los ítems de la venta).
	BuyerName     string
	BuyerPhone    string
	BuyerIDNumber string
	NokName       string // next of kin
	NokPhone      string

	// Totales calculados desde los ítems.
	TotalQuantity int
	Subtotal      decimal.Decimal
	TotalAmount   decimal.Decimal

	// Recibo: uno por venta, asignado una sola vez por el asignador de secuencias.
	ReceiptNumber  string // %04d; vacío hasta asignarse
	ReceiptCounter int64

	// Reversa.
	IsReversed     bool
	ReversedAt     *time.Time
	ReversedBy     string
	ReversalReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeReversed indica si la venta admite reversa.
func (s *Sale) CanBeReversed() bool { return !s.IsReversed }

// SaleItem es una línea dentro de una venta. Congela un snapshot de los campos
// identificadores del producto al momento de la venta, de modo que ediciones
// posteriores del producto no reescriban la historia.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string

	// Snapshot congelado.
	ProductCode string
	ProductName string
	SKUValue    string

	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity * UnitPrice

	// Edad del producto al venderse, en días (verificación FIFO).
	ProductAgeDays int
	CreatedAt      time.Time
}
