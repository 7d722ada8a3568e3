package inventory

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock:
// commit si fn retorna nil, rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
