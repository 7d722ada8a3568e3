package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/inventory"
	"github.com/fieldmax/pos-api/internal/domain/repository"
	"github.com/fieldmax/pos-api/pkg/logger"
)

// LedgerUseCase aplica asientos al ledger de stock de forma transaccional.
// Es la ÚNICA vía por la que cambian la cantidad y el estado de un producto:
// cada Apply crea un asiento inmutable y deriva (cantidad, estado) con las
// reglas puras del dominio, todo bajo bloqueo de la fila del producto.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, log: log}
}

// ApplyInput es la entrada de un asiento del ledger.
type ApplyInput struct {
	ProductID   string
	EntryType   string
	Quantity    int // con signo: positivo entrada, negativo salida
	UnitPrice   decimal.Decimal
	ReferenceID string
	Notes       string
	ActorID     string
	Now         time.Time
}

// Apply registra un asiento en su propia transacción: bloquea la fila del
// producto, valida, persiste el asiento y muta el producto. Cualquier fallo
// de validación aborta la operación completa (sin asiento parcial ni mutación
// parcial).
func (uc *LedgerUseCase) Apply(ctx context.Context, in ApplyInput) (*entity.StockEntry, error) {
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	var entry *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		entry, err = ApplyInTx(productRepo, entryRepo, uc.log, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyInTx registra un asiento usando repositorios de la transacción del
// caller (motor de ventas, reversa, reposición). El bloqueo de la fila del
// producto se mantiene hasta el commit de esa transacción.
func ApplyInTx(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	log *logger.Logger,
	in ApplyInput,
) (*entity.StockEntry, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	hasEntries, err := entryRepo.ExistsForProduct(product.ID)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateEntry(product.ItemKind, product.Quantity, hasEntries, in.EntryType, in.Quantity); err != nil {
		return nil, err
	}

	oldQty, oldStatus := product.Quantity, product.Status
	newQty, newStatus := inventory.Transition(product.ItemKind, product.Quantity, product.Status, in.EntryType, in.Quantity)

	abs := in.Quantity
	if abs < 0 {
		abs = -abs
	}
	entry := &entity.StockEntry{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		EntryType:   in.EntryType,
		UnitPrice:   in.UnitPrice,
		TotalAmount: in.UnitPrice.Mul(decimal.NewFromInt(int64(abs))),
		ReferenceID: in.ReferenceID,
		Notes:       in.Notes,
		CreatedBy:   in.ActorID,
		CreatedAt:   in.Now,
	}
	if err := entryRepo.Create(entry); err != nil {
		return nil, err
	}

	product.Quantity = newQty
	product.Status = newStatus
	product.UpdatedAt = in.Now
	if err := productRepo.Update(product); err != nil {
		return nil, err
	}

	if log != nil {
		log.Info().
			Str("entry_type", in.EntryType).
			Str("product_code", product.ProductCode).
			Int("quantity", in.Quantity).
			Int("old_stock", oldQty).
			Int("new_stock", newQty).
			Str("old_status", oldStatus).
			Str("new_status", newStatus).
			Str("reference", in.ReferenceID).
			Str("actor", in.ActorID).
			Msg("movimiento de stock")
	}
	return entry, nil
}
