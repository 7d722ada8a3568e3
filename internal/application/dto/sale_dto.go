package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea de venta solicitada.
type SaleLineRequest struct {
	Key       string           `json:"key"` // código de producto, SKU o barcode
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // override opcional
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	BuyerName     string            `json:"buyer_name"`
	BuyerPhone    string            `json:"buyer_phone"`
	BuyerIDNumber string            `json:"buyer_id_number"`
	NokName       string            `json:"nok_name"`
	NokPhone      string            `json:"nok_phone"`
	Items         []SaleLineRequest `json:"items"`
}

// SaleLineResponse una línea procesada.
type SaleLineResponse struct {
	Line        int             `json:"line"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	SKUValue    string          `json:"sku_value,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	AgeDays     int             `json:"age_days"`
}

// CreateSaleResponse respuesta de una venta comprometida.
type CreateSaleResponse struct {
	SaleID        string             `json:"sale_id"`
	ReceiptNumber string             `json:"receipt_number"`
	TotalQuantity int                `json:"total_quantity"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []SaleLineResponse `json:"items"`
}

// ReverseSaleRequest cuerpo de POST /api/sales/:id/reverse.
type ReverseSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleResponse detalle de una venta.
type SaleResponse struct {
	SaleID        string             `json:"sale_id"`
	SellerID      string             `json:"seller_id"`
	SaleDate      time.Time          `json:"sale_date"`
	BuyerName     string             `json:"buyer_name,omitempty"`
	BuyerPhone    string             `json:"buyer_phone,omitempty"`
	TotalQuantity int                `json:"total_quantity"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	ReceiptNumber string             `json:"receipt_number,omitempty"`
	IsReversed    bool               `json:"is_reversed"`
	ReversedAt    *time.Time         `json:"reversed_at,omitempty"`
	Items         []SaleLineResponse `json:"items,omitempty"`
}
