package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus ítems.
// Las ventas nunca se borran: solo se crean, reciben ítems/recibo y se reversan.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(saleID string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (guardia de reversa).
	GetForUpdate(saleID string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	List(limit, offset int) ([]*entity.Sale, error)

	CreateItem(item *entity.SaleItem) error
	ListItems(saleID string) ([]*entity.SaleItem, error)
}
