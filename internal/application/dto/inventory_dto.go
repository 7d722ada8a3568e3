package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest cuerpo de POST /api/inventory/restock.
type RestockRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ReferenceID string          `json:"reference_id"`
}

// RestockResponse respuesta de una reposición.
type RestockResponse struct {
	OK          bool   `json:"ok"`
	ProductCode string `json:"product_code"`
	NewQuantity int    `json:"new_quantity"`
	NewStatus   string `json:"new_status"`
}

// AvailabilityResponse respuesta de GET /api/inventory/availability/:key.
type AvailabilityResponse struct {
	Found    bool   `json:"found"`
	Status   string `json:"status,omitempty"`
	Quantity int    `json:"quantity"`
	Units    int    `json:"units,omitempty"`
}

// StockEntryResponse un asiento del ledger.
type StockEntryResponse struct {
	ID          string          `json:"id"`
	Quantity    int             `json:"quantity"`
	EntryType   string          `json:"entry_type"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductHistoryResponse ledger de un producto con la suma de asientos.
type ProductHistoryResponse struct {
	ProductCode string               `json:"product_code"`
	Quantity    int                  `json:"quantity"`
	LedgerSum   int                  `json:"ledger_sum"`
	Entries     []StockEntryResponse `json:"entries"`
}
