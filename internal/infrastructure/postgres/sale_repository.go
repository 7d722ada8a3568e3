package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	sale_id, seller_id, sale_date, buyer_name, buyer_phone, buyer_id_number,
	nok_name, nok_phone, total_quantity, subtotal, total_amount,
	receipt_number, receipt_counter, is_reversed, reversed_at, reversed_by,
	reversal_reason, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		sale.SaleID, sale.SellerID, sale.SaleDate, sale.BuyerName, sale.BuyerPhone,
		sale.BuyerIDNumber, sale.NokName, sale.NokPhone, sale.TotalQuantity,
		sale.Subtotal, sale.TotalAmount, sale.ReceiptNumber, sale.ReceiptCounter,
		sale.IsReversed, sale.ReversedAt, sale.ReversedBy, sale.ReversalReason,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por su SaleID.
func (r *SaleRepo) GetByID(saleID string) (*entity.Sale, error) {
	s, err := r.getOne(`SELECT `+saleColumns+` FROM sales WHERE sale_id = $1`, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene una venta bloqueando su fila (guardia de reversa).
func (r *SaleRepo) GetForUpdate(saleID string) (*entity.Sale, error) {
	s, err := r.getOne(`SELECT `+saleColumns+` FROM sales WHERE sale_id = $1 FOR UPDATE`, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) getOne(query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.SaleID, &s.SellerID, &s.SaleDate, &s.BuyerName, &s.BuyerPhone, &s.BuyerIDNumber,
		&s.NokName, &s.NokPhone, &s.TotalQuantity, &s.Subtotal, &s.TotalAmount,
		&s.ReceiptNumber, &s.ReceiptCounter, &s.IsReversed, &s.ReversedAt, &s.ReversedBy,
		&s.ReversalReason, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Update actualiza totales, recibo y marca de reversa de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET total_quantity = $2, subtotal = $3, total_amount = $4,
			receipt_number = $5, receipt_counter = $6, is_reversed = $7,
			reversed_at = $8, reversed_by = $9, reversal_reason = $10, updated_at = $11
		WHERE sale_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.SaleID, sale.TotalQuantity, sale.Subtotal, sale.TotalAmount,
		sale.ReceiptNumber, sale.ReceiptCounter, sale.IsReversed,
		sale.ReversedAt, sale.ReversedBy, sale.ReversalReason, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// List lista ventas con paginación, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.SaleID, &s.SellerID, &s.SaleDate, &s.BuyerName, &s.BuyerPhone, &s.BuyerIDNumber,
			&s.NokName, &s.NokPhone, &s.TotalQuantity, &s.Subtotal, &s.TotalAmount,
			&s.ReceiptNumber, &s.ReceiptCounter, &s.IsReversed, &s.ReversedAt, &s.ReversedBy,
			&s.ReversalReason, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateItem persiste una línea de venta (snapshot congelado del producto).
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_code, product_name,
			sku_value, quantity, unit_price, total_price, product_age_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductCode, item.ProductName,
		item.SKUValue, item.Quantity, item.UnitPrice, item.TotalPrice,
		item.ProductAgeDays, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de una venta en orden de inserción.
func (r *SaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_code, product_name, sku_value,
			quantity, unit_price, total_price, product_age_days, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductCode, &it.ProductName,
			&it.SKUValue, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
			&it.ProductAgeDays, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
