package sales

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// ReceiptPDFGenerator puerto de generación del recibo en PDF.
// La implementación vive en infrastructure/pdf.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem, seller *entity.User) ([]byte, error)
}

// ReceiptUseCase arma el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	userRepo  repository.UserRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso del recibo.
func NewReceiptUseCase(saleRepo repository.SaleRepository, userRepo repository.UserRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, userRepo: userRepo, generator: generator}
}

// GenerateReceipt carga la venta, sus líneas y el vendedor, y genera el PDF.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, err
	}
	seller, err := uc.userRepo.GetByID(sale.SellerID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale, items, seller)
}
