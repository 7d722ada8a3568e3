package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldmax/pos-api/internal/application/dto"
	"github.com/fieldmax/pos-api/internal/application/usecase"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create crea una categoría.
// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.CreateCategory(c.Context(), usecase.CreateCategoryInput{
		Name:     in.Name,
		ItemKind: in.ItemKind,
		SKUType:  in.SKUType,
		Code:     in.Code,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, tipo de artículo o tipo de SKU inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una categoría con ese código"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(category))
}

// List lista todas las categorías.
// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategoryResponse(cat))
	}
	return c.JSON(out)
}

func toCategoryResponse(cat *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:       cat.ID,
		Name:     cat.Name,
		ItemKind: cat.ItemKind,
		SKUType:  cat.SKUType,
		Code:     cat.Code,
	}
}
