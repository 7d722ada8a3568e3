package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest cuerpo de POST /api/products.
type CreateProductRequest struct {
	CategoryID   string          `json:"category_id"`
	Name         string          `json:"name"`
	SKUValue     string          `json:"sku_value,omitempty"` // IMEI/serial (single)
	Barcode      string          `json:"barcode,omitempty"`   // bulk; se genera si falta
	Quantity     int             `json:"quantity"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	ItemKind     string          `json:"item_kind"`
	Name         string          `json:"name"`
	ProductCode  string          `json:"product_code"`
	SKUValue     string          `json:"sku_value,omitempty"`
	Barcode      string          `json:"barcode,omitempty"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateCategoryRequest cuerpo de POST /api/categories.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ItemKind string `json:"item_kind"` // single | bulk
	SKUType  string `json:"sku_type,omitempty"`
	Code     string `json:"code,omitempty"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ItemKind string `json:"item_kind"`
	SKUType  string `json:"sku_type,omitempty"`
	Code     string `json:"code"`
}
