package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// CategoryUseCase administración de categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// CreateCategoryInput entrada para crear una categoría.
type CreateCategoryInput struct {
	Name     string
	ItemKind string // single | bulk
	SKUType  string // imei | serial (solo single)
	Code     string // opcional; si viene vacío se deriva del nombre
}

// CreateCategory valida y persiste la categoría. El código, si no se indica,
// se deriva del nombre (primera letra + "FSL"). El tipo de artículo queda
// inmutable una vez la categoría tiene productos.
func (uc *CategoryUseCase) CreateCategory(_ context.Context, in CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.ItemKind {
	case entity.ItemKindSingle:
		if in.SKUType != entity.SKUTypeIMEI && in.SKUType != entity.SKUTypeSerial {
			return nil, domain.ErrInvalidInput
		}
	case entity.ItemKindBulk:
		in.SKUType = ""
	default:
		return nil, domain.ErrInvalidInput
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		code = entity.DeriveCategoryCode(name)
	}
	existing, err := uc.categoryRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		ItemKind:  in.ItemKind,
		SKUType:   in.SKUType,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories devuelve todas las categorías.
func (uc *CategoryUseCase) ListCategories(_ context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}
