package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación del puerto SequenceRepository sobre PostgreSQL.
// Pensado para usarse con una tx: GetForUpdate mantiene el bloqueo de fila
// hasta el commit, serializando a los callers concurrentes del mismo scope.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de secuencias. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// EnsureScope crea la fila del contador en 0 si no existe (idempotente).
func (r *SequenceRepo) EnsureScope(scopeKey string) error {
	query := `
		INSERT INTO sequence_counters (scope_key, counter)
		VALUES ($1, 0)
		ON CONFLICT (scope_key) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, scopeKey)
	if err != nil {
		return fmt.Errorf("ensure sequence scope: %w", err)
	}
	return nil
}

// GetForUpdate lee el contador bloqueando la fila (SELECT FOR UPDATE).
func (r *SequenceRepo) GetForUpdate(scopeKey string) (*entity.SequenceCounter, error) {
	query := `SELECT scope_key, counter FROM sequence_counters WHERE scope_key = $1 FOR UPDATE`
	var c entity.SequenceCounter
	err := r.q.QueryRow(context.Background(), query, scopeKey).Scan(&c.ScopeKey, &c.Counter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sequence for update: %w", err)
	}
	return &c, nil
}

// Update persiste el valor incrementado del contador.
func (r *SequenceRepo) Update(counter *entity.SequenceCounter) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sequence_counters SET counter = $2 WHERE scope_key = $1`,
		counter.ScopeKey, counter.Counter,
	)
	if err != nil {
		return fmt.Errorf("update sequence: %w", err)
	}
	return nil
}
