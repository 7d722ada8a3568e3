package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los mapean a códigos de estado; los adaptadores los envuelven con %w.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Motor de inventario / ventas.
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadySold       = errors.New("el producto ya fue vendido")
	ErrAlreadyReversed   = errors.New("la venta ya fue reversada")
	ErrCannotRestock     = errors.New("un artículo único no admite reposición")
	ErrInvalidPrice      = errors.New("precio de venta inválido")
	ErrResourceBusy      = errors.New("el recurso está siendo procesado, reintente")
)
