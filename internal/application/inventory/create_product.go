package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/inventory"
	"github.com/fieldmax/pos-api/internal/domain/repository"
	"github.com/fieldmax/pos-api/pkg/logger"
)

// codeRetries: reintentos ante colisión del código consultivo (23505).
const codeRetries = 2

// CreateProductUseCase da de alta productos: genera código de producto (y
// barcode para bulk), crea el registro y asienta el stock inicial como
// purchase a través del ledger, todo en una transacción.
type CreateProductUseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewCreateProductUseCase construye el caso de uso.
func NewCreateProductUseCase(txRunner TxRunner, categoryRepo repository.CategoryRepository, log *logger.Logger) *CreateProductUseCase {
	return &CreateProductUseCase{txRunner: txRunner, categoryRepo: categoryRepo, log: log}
}

// CreateProductInput entrada para el alta de un producto.
type CreateProductInput struct {
	CategoryID   string
	Name         string
	SKUValue     string // IMEI/serial; obligatorio para single
	Barcode      string // opcional; solo bulk, se genera si viene vacío
	Quantity     int    // stock inicial; forzado a 1 para single
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	ActorID      string
	Now          time.Time
}

// CreateProduct valida según el tipo de artículo, genera identificadores y
// persiste producto + asiento inicial. Una colisión del código consultivo
// dispara un reintento con el número recalculado.
func (uc *CreateProductUseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	in.Name = strings.TrimSpace(in.Name)
	in.SKUValue = strings.TrimSpace(in.SKUValue)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if in.SellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	if in.BuyingPrice.IsNegative() || in.BuyingPrice.GreaterThan(in.SellingPrice) {
		return nil, domain.ErrInvalidPrice
	}

	if category.IsSingleItem() {
		// Cada unidad single es un registro propio: cantidad 1, sin barcode.
		if in.SKUValue == "" {
			return nil, domain.ErrInvalidInput
		}
		in.Quantity = 1
		in.Barcode = ""
	} else {
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		in.SKUValue = ""
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	var product *entity.Product
	var lastErr error
	for attempt := 0; attempt <= codeRetries; attempt++ {
		lastErr = uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			entryRepo repository.StockEntryRepository,
			_ repository.SequenceRepository,
		) error {
			var err error
			product, err = uc.createInTx(productRepo, entryRepo, category, in)
			return err
		})
		if lastErr == nil {
			return product, nil
		}
		// 23505 sobre product_code o barcode: recalcular y reintentar.
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (uc *CreateProductUseCase) createInTx(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	category *entity.Category,
	in CreateProductInput,
) (*entity.Product, error) {
	code, err := NextProductCode(productRepo, category)
	if err != nil {
		return nil, err
	}
	barcode := in.Barcode
	if category.IsBulkItem() && barcode == "" {
		barcode, err = NextBarcode(productRepo, category, in.Now)
		if err != nil {
			return nil, err
		}
	}

	// Pre-intake un single aún no se vendió: nace available, nunca sold.
	status := entity.StatusAvailable
	if category.IsBulkItem() {
		status = inventory.DeriveStatus(category.ItemKind, 0, "")
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		CategoryID:   category.ID,
		ItemKind:     category.ItemKind,
		Name:         in.Name,
		ProductCode:  code,
		SKUValue:     in.SKUValue,
		Barcode:      barcode,
		Quantity:     0,
		BuyingPrice:  in.BuyingPrice,
		SellingPrice: in.SellingPrice,
		Status:       status,
		OwnerID:      in.ActorID,
		IsActive:     true,
		CreatedAt:    in.Now,
		UpdatedAt:    in.Now,
	}
	if err := productRepo.Create(product); err != nil {
		return nil, err
	}

	// Stock inicial a través del ledger (primer purchase; exento de la
	// protección anti-reposición de los single).
	if in.Quantity > 0 {
		if _, err := ApplyInTx(productRepo, entryRepo, uc.log, ApplyInput{
			ProductID:   product.ID,
			EntryType:   entity.EntryTypePurchase,
			Quantity:    in.Quantity,
			UnitPrice:   in.BuyingPrice,
			ReferenceID: "INTAKE-" + product.ProductCode,
			Notes:       "alta de producto",
			ActorID:     in.ActorID,
			Now:         in.Now,
		}); err != nil {
			return nil, err
		}
		// Releer: el ledger es quien muta cantidad y estado.
		updated, err := productRepo.GetByID(product.ID)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			product = updated
		}
	}
	return product, nil
}
