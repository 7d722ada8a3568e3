package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/application/sequence"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
	"github.com/fieldmax/pos-api/pkg/logger"
)

// CreateSaleUseCase es el motor transaccional de ventas: ejecuta UNA
// transacción de cliente completa — selección FIFO de unidades, asientos de
// ledger, totales y número de recibo — como una sola unidad atómica.
type CreateSaleUseCase struct {
	txRunner SaleTxRunner
	log      *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner SaleTxRunner, log *logger.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, log: log}
}

// BuyerDetails datos del comprador, compartidos por todos los ítems.
type BuyerDetails struct {
	Name     string
	Phone    string
	IDNumber string
	NokName  string
	NokPhone string
}

// LineItemInput una línea solicitada: llave de búsqueda (código de producto,
// SKU o barcode), cantidad y override opcional de precio unitario.
type LineItemInput struct {
	Key       string
	Quantity  int
	UnitPrice *decimal.Decimal // nil o <=0: usar el precio de venta configurado
}

// CreateSaleInput entrada del motor de ventas.
type CreateSaleInput struct {
	ActorID string
	Buyer   BuyerDetails
	Items   []LineItemInput
	Now     time.Time
}

// LineResult resultado de una línea procesada.
type LineResult struct {
	Line        int
	ProductID   string
	ProductCode string
	ProductName string
	SKUValue    string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	AgeDays     int
}

// CreateSaleResult resultado de una venta comprometida.
type CreateSaleResult struct {
	SaleID        string
	ReceiptNumber string
	TotalQuantity int
	TotalAmount   decimal.Decimal
	Items         []LineResult
}

// CreateSale procesa las líneas en el orden enviado dentro de una transacción
// compartida. Por línea: resuelve candidatos no vendidos bajo bloqueo
// exclusivo (FOR UPDATE, orden created_at), selecciona FIFO para single o
// verifica cantidad para bulk, congela el snapshot en el SaleItem y asienta la
// salida en el ledger. Al final recalcula totales desde los ítems y asigna el
// número de recibo vía el asignador de secuencias. Si cualquier línea falla,
// TODO se revierte y el caller recibe un *LineError con línea y razón.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*CreateSaleResult, error) {
	if in.ActorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Validaciones de forma, antes de tomar cualquier bloqueo.
	for i, item := range in.Items {
		if strings.TrimSpace(item.Key) == "" {
			return nil, &LineError{Line: i, Key: item.Key, Code: RejectNotFound, Err: domain.ErrInvalidInput}
		}
		if item.Quantity <= 0 {
			return nil, &LineError{Line: i, Key: item.Key, Code: RejectInvalidQuantity, Err: domain.ErrInvalidInput}
		}
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	var result *CreateSaleResult
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error {
		var err error
		result, err = uc.createInTx(productRepo, entryRepo, saleRepo, seqRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *CreateSaleUseCase) createInTx(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.SequenceRepository,
	in CreateSaleInput,
) (*CreateSaleResult, error) {
	// Identificador de venta desde el contador anual bajo bloqueo de fila.
	year := sequence.YearOf(in.Now)
	saleNum, err := sequence.NextInTx(seqRepo, sequence.SaleScope(year))
	if err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		SaleID:        sequence.FormatSaleID(year, saleNum),
		SellerID:      in.ActorID,
		SaleDate:      in.Now,
		BuyerName:     strings.TrimSpace(in.Buyer.Name),
		BuyerPhone:    strings.TrimSpace(in.Buyer.Phone),
		BuyerIDNumber: strings.TrimSpace(in.Buyer.IDNumber),
		NokName:       strings.TrimSpace(in.Buyer.NokName),
		NokPhone:      strings.TrimSpace(in.Buyer.NokPhone),
		Subtotal:      decimal.Zero,
		TotalAmount:   decimal.Zero,
		CreatedAt:     in.Now,
		UpdatedAt:     in.Now,
	}
	if err := saleRepo.Create(sale); err != nil {
		return nil, err
	}

	results := make([]LineResult, 0, len(in.Items))
	for i, line := range in.Items {
		lr, err := uc.processLine(productRepo, entryRepo, saleRepo, sale, i, line, in)
		if err != nil {
			return nil, err
		}
		results = append(results, *lr)
	}

	// Totales recalculados desde los ítems, nunca capturados a mano.
	totalQty := 0
	subtotal := decimal.Zero
	for _, r := range results {
		totalQty += r.Quantity
		subtotal = subtotal.Add(r.TotalPrice)
	}
	sale.TotalQuantity = totalQty
	sale.Subtotal = subtotal
	sale.TotalAmount = subtotal

	// Número de recibo: asignación única, con guardia de idempotencia.
	if sale.ReceiptNumber == "" {
		n, err := sequence.NextInTx(seqRepo, sequence.ReceiptScope)
		if err != nil {
			return nil, err
		}
		sale.ReceiptCounter = n
		sale.ReceiptNumber = sequence.FormatReceiptNumber(n)
	}
	sale.UpdatedAt = in.Now
	if err := saleRepo.Update(sale); err != nil {
		return nil, err
	}

	if uc.log != nil {
		uc.log.Info().
			Str("sale_id", sale.SaleID).
			Str("receipt", sale.ReceiptNumber).
			Int("items", len(results)).
			Int("total_quantity", totalQty).
			Str("total_amount", sale.TotalAmount.String()).
			Str("seller", in.ActorID).
			Msg("venta registrada")
	}
	return &CreateSaleResult{
		SaleID:        sale.SaleID,
		ReceiptNumber: sale.ReceiptNumber,
		TotalQuantity: totalQty,
		TotalAmount:   sale.TotalAmount,
		Items:         results,
	}, nil
}

// processLine resuelve y asienta una línea bajo los bloqueos de la transacción.
func (uc *CreateSaleUseCase) processLine(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
	sale *entity.Sale,
	lineIdx int,
	line LineItemInput,
	in CreateSaleInput,
) (*LineResult, error) {
	key := strings.TrimSpace(line.Key)

	// Candidatos activos NO vendidos, bloqueados, en orden FIFO (created_at).
	candidates, err := productRepo.FindByKeyForUpdate(key)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		sold, serr := productRepo.AnySoldByKey(key)
		if serr != nil {
			return nil, serr
		}
		if sold {
			return nil, &LineError{Line: lineIdx, Key: key, Code: RejectAlreadySold, Err: domain.ErrAlreadySold}
		}
		return nil, &LineError{Line: lineIdx, Key: key, Code: RejectNotFound, Err: domain.ErrNotFound}
	}

	var target *entity.Product
	if candidates[0].ItemKind == entity.ItemKindSingle {
		// Un single se vende de a una unidad.
		if line.Quantity != 1 {
			return nil, &LineError{Line: lineIdx, Key: key, Code: RejectInvalidQuantity, Err: domain.ErrInvalidInput}
		}
		// FIFO estricto: la unidad disponible más antigua. El bloqueo garantiza
		// que dos transacciones concurrentes no seleccionen la misma unidad:
		// la perdedora la verá como no disponible, no como inexistente.
		for _, c := range candidates {
			if c.Status == entity.StatusAvailable && c.Quantity == 1 {
				target = c
				break
			}
		}
		if target == nil {
			return nil, &LineError{Line: lineIdx, Key: key, Code: RejectUnavailable, Err: domain.ErrAlreadySold}
		}
	} else {
		target = candidates[0]
		if target.Quantity < line.Quantity {
			return nil, &LineError{Line: lineIdx, Key: key, Code: RejectInsufficientStock, Err: domain.ErrInsufficientStock}
		}
	}

	// Precio efectivo: override explícito o precio de venta configurado.
	price := target.SellingPrice
	if line.UnitPrice != nil && line.UnitPrice.GreaterThan(decimal.Zero) {
		price = *line.UnitPrice
	}
	if !price.GreaterThan(decimal.Zero) {
		return nil, &LineError{Line: lineIdx, Key: key, Code: RejectInvalidPrice, Err: domain.ErrInvalidPrice}
	}

	qty := decimal.NewFromInt(int64(line.Quantity))
	item := &entity.SaleItem{
		ID:             uuid.New().String(),
		SaleID:         sale.SaleID,
		ProductID:      target.ID,
		ProductCode:    target.ProductCode,
		ProductName:    target.Name,
		SKUValue:       target.SKUValue,
		Quantity:       line.Quantity,
		UnitPrice:      price,
		TotalPrice:     price.Mul(qty),
		ProductAgeDays: target.AgeDays(in.Now),
		CreatedAt:      in.Now,
	}
	if err := saleRepo.CreateItem(item); err != nil {
		return nil, err
	}

	// Salida de stock a través del ledger: única vía de mutación del producto.
	if _, err := appinv.ApplyInTx(productRepo, entryRepo, uc.log, appinv.ApplyInput{
		ProductID:   target.ID,
		EntryType:   entity.EntryTypeSale,
		Quantity:    -line.Quantity,
		UnitPrice:   price,
		ReferenceID: "SALE-" + sale.SaleID,
		Notes:       "venta " + sale.SaleID,
		ActorID:     in.ActorID,
		Now:         in.Now,
	}); err != nil {
		return nil, err
	}

	return &LineResult{
		Line:        lineIdx,
		ProductID:   target.ID,
		ProductCode: target.ProductCode,
		ProductName: target.Name,
		SKUValue:    target.SKUValue,
		Quantity:    line.Quantity,
		UnitPrice:   price,
		TotalPrice:  item.TotalPrice,
		AgeDays:     item.ProductAgeDays,
	}, nil
}
