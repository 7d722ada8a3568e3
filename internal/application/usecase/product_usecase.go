package usecase

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// ProductUseCase lecturas de productos (el alta pasa por el caso de uso de
// inventario para asentar el stock inicial en el ledger).
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// GetProduct devuelve un producto por ID.
func (uc *ProductUseCase) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts devuelve productos paginados, más recientes primero.
func (uc *ProductUseCase) ListProducts(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(limit, offset)
}
