package sales

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// GetSaleUseCase lectura de ventas (detalle y listado) para la capa HTTP y el
// recibo PDF.
type GetSaleUseCase struct {
	saleRepo repository.SaleRepository
}

// NewGetSaleUseCase construye el caso de uso.
func NewGetSaleUseCase(saleRepo repository.SaleRepository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo}
}

// SaleWithItems venta con sus líneas.
type SaleWithItems struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

// GetSale devuelve la venta y sus ítems.
func (uc *GetSaleUseCase) GetSale(_ context.Context, saleID string) (*SaleWithItems, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, err
	}
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

// ListSales devuelve ventas paginadas, más recientes primero.
func (uc *GetSaleUseCase) ListSales(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.List(limit, offset)
}
