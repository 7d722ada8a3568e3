package sales

import (
	"context"
	"time"

	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
	"github.com/fieldmax/pos-api/pkg/logger"
)

// ReverseSaleUseCase anula una venta completa: re-acredita el stock de cada
// ítem vía asientos reversal y marca la venta como reversada, todo en una
// transacción. La guardia de idempotencia impide el doble abono de stock.
type ReverseSaleUseCase struct {
	txRunner SaleTxRunner
	log      *logger.Logger
}

// NewReverseSaleUseCase construye el caso de uso.
func NewReverseSaleUseCase(txRunner SaleTxRunner, log *logger.Logger) *ReverseSaleUseCase {
	return &ReverseSaleUseCase{txRunner: txRunner, log: log}
}

// ReverseSaleInput entrada de una reversa.
type ReverseSaleInput struct {
	SaleID  string
	ActorID string
	Reason  string
	Now     time.Time
}

// ReverseSale bloquea la fila de la venta, rechaza con ErrAlreadyReversed si
// ya fue reversada (conflicto explícito, nunca un no-op silencioso), restaura
// el stock de cada ítem y registra actor, razón y timestamp. Un fallo en
// cualquier ítem aborta la reversa completa.
func (uc *ReverseSaleUseCase) ReverseSale(ctx context.Context, in ReverseSaleInput) error {
	if in.SaleID == "" || in.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	return uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		saleRepo repository.SaleRepository,
		_ repository.SequenceRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.IsReversed {
			return domain.ErrAlreadyReversed
		}

		items, err := saleRepo.ListItems(sale.SaleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			// Cantidad positiva igual a la vendida: single vuelve a
			// (1, available), bulk suma la cantidad de vuelta.
			if _, err := appinv.ApplyInTx(productRepo, entryRepo, uc.log, appinv.ApplyInput{
				ProductID:   item.ProductID,
				EntryType:   entity.EntryTypeReversal,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				ReferenceID: "REVERSE-" + sale.SaleID,
				Notes:       "reversa de venta " + sale.SaleID,
				ActorID:     in.ActorID,
				Now:         in.Now,
			}); err != nil {
				return err
			}
		}

		reversedAt := in.Now
		sale.IsReversed = true
		sale.ReversedAt = &reversedAt
		sale.ReversedBy = in.ActorID
		sale.ReversalReason = in.Reason
		sale.UpdatedAt = in.Now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		if uc.log != nil {
			uc.log.Info().
				Str("sale_id", sale.SaleID).
				Int("items", len(items)).
				Str("actor", in.ActorID).
				Msg("venta reversada")
		}
		return nil
	})
}
