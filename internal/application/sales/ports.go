package sales

import (
	"context"

	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción con los
// repositorios que el motor de ventas necesita (producto, ledger, venta,
// secuencias), todos atados a la misma tx. Una venta multi-ítem es una sola
// unidad atómica: cualquier error revierte asientos, mutaciones de producto,
// contadores y la venta misma.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		entryRepo repository.StockEntryRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
