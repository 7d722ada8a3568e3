package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (actores).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
