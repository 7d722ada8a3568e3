package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByCode(code string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	// HasProducts indica si existen productos bajo la categoría
	// (el tipo de artículo es inmutable una vez los hay).
	HasProducts(id string) (bool, error)
}
