package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldmax/pos-api/internal/application/dto"
	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/domain"
)

// InventoryHandler maneja disponibilidad y reposición de stock (protegido).
type InventoryHandler struct {
	lookupUC  *appinv.LookupUseCase
	restockUC *appinv.RestockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(lookupUC *appinv.LookupUseCase, restockUC *appinv.RestockUseCase) *InventoryHandler {
	return &InventoryHandler{lookupUC: lookupUC, restockUC: restockUC}
}

// Availability consulta disponibilidad por código, SKU o barcode.
// GET /api/inventory/availability/:key
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "llave requerida"})
	}
	av, err := h.lookupUC.LookupAvailability(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AvailabilityResponse{
		Found:    av.Found,
		Status:   av.Status,
		Quantity: av.Quantity,
		Units:    av.Units,
	})
}

// Restock repone stock de un producto bulk.
// POST /api/inventory/restock
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.restockUC.Restock(c.Context(), appinv.RestockInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		ReferenceID: in.ReferenceID,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad debe ser positiva"})
		case domain.ErrInvalidPrice:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRICE", Message: "precio unitario inválido"})
		case domain.ErrCannotRestock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CANNOT_RESTOCK", Message: "una unidad de rastreo individual no admite reposición"})
		}
		if errors.Is(err, domain.ErrResourceBusy) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESOURCE_BUSY", Message: "el producto está siendo procesado, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.RestockResponse{
		OK:          true,
		ProductCode: result.ProductCode,
		NewQuantity: result.NewQuantity,
		NewStatus:   result.NewStatus,
	})
}
