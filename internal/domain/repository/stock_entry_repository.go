package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// StockEntryRepository define el puerto de persistencia del ledger de stock.
// Solo inserta y lee: los asientos jamás se actualizan ni se borran.
type StockEntryRepository interface {
	Create(entry *entity.StockEntry) error
	ExistsForProduct(productID string) (bool, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error)
	// SumByProduct devuelve la suma con signo de los asientos del producto.
	// Debe coincidir con la cantidad actual del producto en todo momento.
	SumByProduct(productID string) (int, error)
}
