package inventory

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// HistoryUseCase lee el ledger de un producto (reportes/exportación).
type HistoryUseCase struct {
	productRepo repository.ProductRepository
	entryRepo   repository.StockEntryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(productRepo repository.ProductRepository, entryRepo repository.StockEntryRepository) *HistoryUseCase {
	return &HistoryUseCase{productRepo: productRepo, entryRepo: entryRepo}
}

// ProductHistory agrupa el producto, sus asientos y la suma del ledger.
// LedgerSum debe coincidir con Product.Quantity en todo momento; se expone
// para que reportes y tests verifiquen el invariante sin recalcularlo.
type ProductHistory struct {
	Product   *entity.Product
	Entries   []*entity.StockEntry
	LedgerSum int
}

// History devuelve los asientos del producto más recientes primero.
func (uc *HistoryUseCase) History(_ context.Context, productID string, limit, offset int) (*ProductHistory, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := uc.entryRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	sum, err := uc.entryRepo.SumByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &ProductHistory{Product: product, Entries: entries, LedgerSum: sum}, nil
}
