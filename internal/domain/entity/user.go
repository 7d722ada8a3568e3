package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User es el actor autenticado que la capa de peticiones entrega al motor.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
