package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldmax/pos-api/internal/application/auth"
	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/application/usecase"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	CreateProduct *appinv.CreateProductUseCase
	HistoryUC     *appinv.HistoryUseCase
	LookupUC      *appinv.LookupUseCase
	RestockUC     *appinv.RestockUseCase
	CreateSale    *sales.CreateSaleUseCase
	ReverseSale   *sales.ReverseSaleUseCase
	GetSale       *sales.GetSaleUseCase
	ReceiptUC     *sales.ReceiptUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categories (protegido; crear requiere admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequireRole(entity.RoleAdmin), categoryHandler.Create)
	categories.Get("/", categoryHandler.List)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CreateProduct, deps.ProductUC, deps.HistoryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/entries", productHandler.Entries)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LookupUC, deps.RestockUC)
	invGroup.Get("/availability/:key", inventoryHandler.Availability)
	invGroup.Post("/restock", inventoryHandler.Restock)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ReverseSale, deps.GetSale, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt.pdf", saleHandler.Receipt)
	salesGroup.Post("/:id/reverse", RequireRole(entity.RoleAdmin), saleHandler.Reverse)
}
