package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and sales.SaleTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	entryRepo := NewStockEntryRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(productRepo, entryRepo, seqRepo); err != nil {
		return translateTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con los repos de venta además de los de inventario.
// Toda la venta (contador, venta, ítems y asientos de stock) comparte la misma tx.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	entryRepo := NewStockEntryRepository(tx)
	saleRepo := NewSaleRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(productRepo, entryRepo, saleRepo, seqRepo); err != nil {
		return translateTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
