package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
	"github.com/fieldmax/pos-api/pkg/logger"
)

// RestockUseCase repone stock de productos bulk vía asiento purchase.
// Un single se rechaza salvo que sea su primer asiento (protección del ledger).
type RestockUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(txRunner TxRunner, log *logger.Logger) *RestockUseCase {
	return &RestockUseCase{txRunner: txRunner, log: log}
}

// RestockInput entrada para una reposición.
type RestockInput struct {
	ProductID   string
	Quantity    int // unidades a sumar, > 0
	UnitPrice   decimal.Decimal
	ReferenceID string
	ActorID     string
	Now         time.Time
}

// RestockResult resultado de la reposición.
type RestockResult struct {
	ProductCode string
	NewQuantity int
	NewStatus   string
}

// Restock aplica el asiento purchase bajo bloqueo de fila y devuelve la nueva
// cantidad. Cualquier fallo de validación revierte todo.
func (uc *RestockUseCase) Restock(ctx context.Context, in RestockInput) (*RestockResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	var result *RestockResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		_ repository.SequenceRepository,
	) error {
		entry, err := ApplyInTx(productRepo, entryRepo, uc.log, ApplyInput{
			ProductID:   in.ProductID,
			EntryType:   entity.EntryTypePurchase,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			ReferenceID: in.ReferenceID,
			Notes:       "reposición de stock",
			ActorID:     in.ActorID,
			Now:         in.Now,
		})
		if err != nil {
			return err
		}
		product, err := productRepo.GetByID(entry.ProductID)
		if err != nil {
			return err
		}
		result = &RestockResult{
			ProductCode: product.ProductCode,
			NewQuantity: product.Quantity,
			NewStatus:   product.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
