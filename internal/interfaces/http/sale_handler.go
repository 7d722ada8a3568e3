package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldmax/pos-api/internal/application/dto"
	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// SaleHandler maneja el motor de ventas: creación, reversa, lectura y recibo.
type SaleHandler struct {
	createUC  *sales.CreateSaleUseCase
	reverseUC *sales.ReverseSaleUseCase
	getUC     *sales.GetSaleUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, reverseUC *sales.ReverseSaleUseCase, getUC *sales.GetSaleUseCase, receiptUC *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, reverseUC: reverseUC, getUC: getUC, receiptUC: receiptUC}
}

// Create registra una venta multi-ítem atómica.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la venta requiere al menos un ítem"})
	}

	items := make([]sales.LineItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.LineItemInput{
			Key:       it.Key,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	result, err := h.createUC.CreateSale(c.Context(), sales.CreateSaleInput{
		ActorID: actorID,
		Buyer: sales.BuyerDetails{
			Name:     in.BuyerName,
			Phone:    in.BuyerPhone,
			IDNumber: in.BuyerIDNumber,
			NokName:  in.NokName,
			NokPhone: in.NokPhone,
		},
		Items: items,
	})
	if err != nil {
		return h.saleError(c, err)
	}

	lines := make([]dto.SaleLineResponse, 0, len(result.Items))
	for _, r := range result.Items {
		lines = append(lines, toSaleLineResponse(r))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{
		SaleID:        result.SaleID,
		ReceiptNumber: result.ReceiptNumber,
		TotalQuantity: result.TotalQuantity,
		TotalAmount:   result.TotalAmount,
		Items:         lines,
	})
}

// saleError mapea LineError y sentinelas a respuestas con código y línea.
func (h *SaleHandler) saleError(c *fiber.Ctx, err error) error {
	var lineErr *sales.LineError
	if errors.As(err, &lineErr) {
		status := fiber.StatusConflict
		switch lineErr.Code {
		case sales.RejectNotFound:
			status = fiber.StatusNotFound
		case sales.RejectInvalidQuantity, sales.RejectInvalidPrice:
			status = fiber.StatusBadRequest
		}
		line := lineErr.Line
		return c.Status(status).JSON(dto.ErrorResponse{
			Code:    lineErr.Code,
			Message: lineErr.Error(),
			Line:    &line,
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrResourceBusy) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESOURCE_BUSY", Message: "un producto de la venta está siendo procesado, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Reverse anula una venta completa y restaura su stock.
// POST /api/sales/:id/reverse
func (h *SaleHandler) Reverse(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saleID := c.Params("id")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.ReverseSaleRequest
	// El cuerpo (razón) es opcional.
	_ = c.BodyParser(&in)

	err := h.reverseUC.ReverseSale(c.Context(), sales.ReverseSaleInput{
		SaleID:  saleID,
		ActorID: actorID,
		Reason:  in.Reason,
	})
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		case domain.ErrAlreadyReversed:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_REVERSED", Message: "la venta ya fue reversada"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrResourceBusy) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESOURCE_BUSY", Message: "la venta está siendo procesada, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "sale_id": saleID})
}

// GetByID devuelve el detalle de una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	saleID := c.Params("id")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	sw, err := h.getUC.GetSale(c.Context(), saleID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toSaleResponse(sw.Sale, sw.Items))
}

// List lista ventas paginadas.
// GET /api/sales?limit=&offset=
func (h *SaleHandler) List(c *fiber.Ctx) error {
	list, err := h.getUC.ListSales(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, nil))
	}
	return c.JSON(out)
}

// Receipt genera el recibo PDF de la venta.
// GET /api/sales/:id/receipt.pdf
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	saleID := c.Params("id")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.Context(), saleID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="recibo-`+saleID+`.pdf"`)
	return c.Send(pdfBytes)
}

func toSaleLineResponse(r sales.LineResult) dto.SaleLineResponse {
	return dto.SaleLineResponse{
		Line:        r.Line,
		ProductCode: r.ProductCode,
		ProductName: r.ProductName,
		SKUValue:    r.SKUValue,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		TotalPrice:  r.TotalPrice,
		AgeDays:     r.AgeDays,
	}
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	out := dto.SaleResponse{
		SaleID:        s.SaleID,
		SellerID:      s.SellerID,
		SaleDate:      s.SaleDate,
		BuyerName:     s.BuyerName,
		BuyerPhone:    s.BuyerPhone,
		TotalQuantity: s.TotalQuantity,
		TotalAmount:   s.TotalAmount,
		ReceiptNumber: s.ReceiptNumber,
		IsReversed:    s.IsReversed,
		ReversedAt:    s.ReversedAt,
	}
	for i, it := range items {
		out.Items = append(out.Items, dto.SaleLineResponse{
			Line:        i,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			SKUValue:    it.SKUValue,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			AgeDays:     it.ProductAgeDays,
		})
	}
	return out
}
