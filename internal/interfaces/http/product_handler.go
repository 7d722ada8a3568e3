package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldmax/pos-api/internal/application/dto"
	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/application/usecase"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP de productos (protegido).
// El alta pasa por el caso de uso de inventario para que el stock inicial
// quede asentado en el ledger.
type ProductHandler struct {
	createUC  *appinv.CreateProductUseCase
	readUC    *usecase.ProductUseCase
	historyUC *appinv.HistoryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(createUC *appinv.CreateProductUseCase, readUC *usecase.ProductUseCase, historyUC *appinv.HistoryUseCase) *ProductHandler {
	return &ProductHandler{createUC: createUC, readUC: readUC, historyUC: historyUC}
}

// Create da de alta un producto con su stock inicial.
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.createUC.CreateProduct(c.Context(), appinv.CreateProductInput{
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		SKUValue:     in.SKUValue,
		Barcode:      in.Barcode,
		Quantity:     in.Quantity,
		BuyingPrice:  in.BuyingPrice,
		SellingPrice: in.SellingPrice,
		ActorID:      GetUserID(c),
	})
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case domain.ErrInvalidPrice:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRICE", Message: "precio de venta debe ser positivo y no menor al de compra"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "código, SKU o barcode ya registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// GetByID obtiene un producto.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	product, err := h.readUC.GetProduct(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toProductResponse(product))
}

// List lista productos paginados.
// GET /api/products?limit=&offset=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	products, err := h.readUC.ListProducts(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// Entries devuelve el ledger de un producto con la suma de asientos.
// GET /api/products/:id/entries?limit=&offset=
func (h *ProductHandler) Entries(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	history, err := h.historyUC.History(c.Context(), id, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	entries := make([]dto.StockEntryResponse, 0, len(history.Entries))
	for _, e := range history.Entries {
		entries = append(entries, dto.StockEntryResponse{
			ID:          e.ID,
			Quantity:    e.Quantity,
			EntryType:   e.EntryType,
			UnitPrice:   e.UnitPrice,
			TotalAmount: e.TotalAmount,
			ReferenceID: e.ReferenceID,
			CreatedBy:   e.CreatedBy,
			CreatedAt:   e.CreatedAt,
		})
	}
	return c.JSON(dto.ProductHistoryResponse{
		ProductCode: history.Product.ProductCode,
		Quantity:    history.Product.Quantity,
		LedgerSum:   history.LedgerSum,
		Entries:     entries,
	})
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		ItemKind:     p.ItemKind,
		Name:         p.Name,
		ProductCode:  p.ProductCode,
		SKUValue:     p.SKUValue,
		Barcode:      p.Barcode,
		Quantity:     p.Quantity,
		SellingPrice: p.SellingPrice,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
