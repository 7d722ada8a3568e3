package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	StatusAvailable  = "available"
	StatusSold       = "sold"       // solo single; pegajoso hasta una reversal/return explícita
	StatusLowStock   = "lowstock"   // solo bulk
	StatusOutOfStock = "outofstock" // solo bulk
)

// Product es un registro de inventario.
//   - Categorías single: cada unidad física tiene su propio Product (cantidad 0 o 1,
//     SKUValue único: IMEI o serial).
//   - Categorías bulk: varias unidades comparten un Product (cantidad agregada,
//     Barcode único opcional).
//
// Quantity y Status mutan únicamente a través del ledger de stock.
type Product struct {
	ID           string
	CategoryID   string
	ItemKind     string // denormalizado desde la categoría en las lecturas (JOIN)
	Name         string
	ProductCode  string // secuencial único: prefijo de categoría + número
	SKUValue     string // IMEI/serial (single); vacío para bulk
	Barcode      string // solo bulk; vacío para single
	Quantity     int
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Status       string
	OwnerID      string // actor dueño del registro; vacío si no asignado
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AgeDays devuelve la edad del producto en días respecto a now (auditoría FIFO).
func (p *Product) AgeDays(now time.Time) int {
	if p.CreatedAt.IsZero() || now.Before(p.CreatedAt) {
		return 0
	}
	return int(now.Sub(p.CreatedAt).Hours() / 24)
}
