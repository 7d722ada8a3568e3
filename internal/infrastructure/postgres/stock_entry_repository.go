package postgres

import (
	"context"
	"fmt"

	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del puerto StockEntryRepository sobre PostgreSQL.
// El ledger es append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create inserta un asiento inmutable en el ledger.
func (r *StockEntryRepo) Create(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, product_id, quantity, entry_type, unit_price,
			total_amount, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.Quantity, entry.EntryType, entry.UnitPrice,
		entry.TotalAmount, entry.ReferenceID, entry.Notes, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// ExistsForProduct indica si el producto ya tiene asientos en el ledger.
func (r *StockEntryRepo) ExistsForProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_entries WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("stock entries exist: %w", err)
	}
	return exists, nil
}

// ListByProduct lista los asientos de un producto, más recientes primero.
func (r *StockEntryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, product_id, quantity, entry_type, unit_price, total_amount,
			reference_id, notes, created_by, created_at
		FROM stock_entries WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.EntryType, &e.UnitPrice,
			&e.TotalAmount, &e.ReferenceID, &e.Notes, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByProduct devuelve la suma con signo de los asientos del producto.
func (r *StockEntryRepo) SumByProduct(productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_entries WHERE product_id = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock entries: %w", err)
	}
	return sum, nil
}
