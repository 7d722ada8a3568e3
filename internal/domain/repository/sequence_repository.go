package repository

import "github.com/fieldmax/pos-api/internal/domain/entity"

// SequenceRepository define el puerto del contador de secuencias.
// Se usa exclusivamente dentro de transacciones: GetForUpdate debe mantener el
// bloqueo de la fila desde la lectura hasta el commit para que dos callers
// concurrentes no observen el mismo valor pre-incremento.
type SequenceRepository interface {
	// EnsureScope crea la fila del contador en 0 si no existe (idempotente).
	EnsureScope(scopeKey string) error
	GetForUpdate(scopeKey string) (*entity.SequenceCounter, error)
	Update(counter *entity.SequenceCounter) error
}
