package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/pkg/logger"
)

var testNow = time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

// seedSingle inserta una unidad single disponible con su propio serial.
func seedSingle(s *memStore, id, code, sku string, created time.Time) *entity.Product {
	p := &entity.Product{
		ID:           id,
		CategoryID:   "cat-s",
		ItemKind:     entity.ItemKindSingle,
		Name:         "Galaxy A16",
		ProductCode:  code,
		SKUValue:     sku,
		Quantity:     1,
		BuyingPrice:  decimal.NewFromInt(400),
		SellingPrice: decimal.NewFromInt(550),
		Status:       entity.StatusAvailable,
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	s.products[id] = p
	return p
}

// seedBulk inserta un producto bulk con la cantidad y estado dados.
func seedBulk(s *memStore, id, code, barcode string, qty int, status string, created time.Time) *entity.Product {
	p := &entity.Product{
		ID:           id,
		CategoryID:   "cat-b",
		ItemKind:     entity.ItemKindBulk,
		Name:         "Cargador USB-C",
		ProductCode:  code,
		Barcode:      barcode,
		Quantity:     qty,
		BuyingPrice:  decimal.NewFromInt(10),
		SellingPrice: decimal.NewFromInt(18),
		Status:       status,
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	s.products[id] = p
	return p
}

func newCreateSaleUC(store *memStore) *sales.CreateSaleUseCase {
	return sales.NewCreateSaleUseCase(&fakeSaleTxRunner{s: store}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección FIFO
// ──────────────────────────────────────────────────────────────────────────────

// Dos unidades comparten código de producto; la ingresada primero se vende
// primero, sin importar el orden de inserción en el store.
func TestCreateSale_FIFOSeleccionaLaUnidadMasAntigua(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u-new", "PFSL002", "222222222222222", testNow)
	seedSingle(store, "u-old", "PFSL001", "111111111111111", testNow.Add(-48*time.Hour))
	uc := newCreateSaleUC(store)

	result, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "PFSL001", Quantity: 1}},
		Now:     testNow,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "u-old", result.Items[0].ProductID, "debe salir la unidad más antigua")
	assert.Equal(t, 2, result.Items[0].AgeDays, "la edad al vender queda congelada en la línea")

	assert.Equal(t, entity.StatusSold, store.products["u-old"].Status)
	assert.Equal(t, 0, store.products["u-old"].Quantity)
	assert.Equal(t, entity.StatusAvailable, store.products["u-new"].Status, "la unidad nueva no se toca")
}

// Vendida la única unidad de un SKU, un segundo intento se rechaza como
// ALREADY_SOLD, no como inexistente.
func TestCreateSale_UnidadNoSeVendeDosVeces(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u1", "PFSL001", "111111111111111", testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "111111111111111", Quantity: 1}},
		Now:     testNow,
	})
	require.NoError(t, err)

	_, err = uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-2",
		Items:   []sales.LineItemInput{{Key: "111111111111111", Quantity: 1}},
		Now:     testNow,
	})
	var lineErr *sales.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, sales.RejectAlreadySold, lineErr.Code)
	assert.Equal(t, 0, lineErr.Line)
	assert.ErrorIs(t, err, domain.ErrAlreadySold)
}

// Un single se vende de a una unidad: cantidad distinta de 1 es inválida.
func TestCreateSale_SingleCantidadDistintaDeUno(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u1", "PFSL001", "111111111111111", testNow)
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "PFSL001", Quantity: 2}},
		Now:     testNow,
	})
	var lineErr *sales.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, sales.RejectInvalidQuantity, lineErr.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bulk
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_BulkDescuentaCantidad(t *testing.T) {
	store := newMemStore()
	seedBulk(store, "b1", "AFSL001", "29400011234", 10, entity.StatusAvailable, testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	result, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "29400011234", Quantity: 6}},
		Now:     testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalQuantity)
	p := store.products["b1"]
	assert.Equal(t, 4, p.Quantity)
	assert.Equal(t, entity.StatusLowStock, p.Status, "4 unidades restantes caen bajo el umbral")
}

func TestCreateSale_BulkStockInsuficiente(t *testing.T) {
	store := newMemStore()
	seedBulk(store, "b1", "AFSL001", "29400011234", 3, entity.StatusLowStock, testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "29400011234", Quantity: 5}},
		Now:     testNow,
	})
	var lineErr *sales.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, sales.RejectInsufficientStock, lineErr.Code)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, store.products["b1"].Quantity, "el stock no debe cambiar")
	assert.Empty(t, store.sales, "la venta no debe persistirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad multi-ítem
// ──────────────────────────────────────────────────────────────────────────────

// La línea 2 falla: la línea 1 (ya procesada dentro de la tx) se revierte
// completa — ni venta, ni ítems, ni asientos, ni mutación del producto, ni
// avance de contadores.
func TestCreateSale_MultiItemRevierteTodoAnteElFalloDeUnaLinea(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u1", "PFSL001", "111111111111111", testNow.Add(-time.Hour))
	seedBulk(store, "b1", "AFSL001", "29400011234", 2, entity.StatusLowStock, testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items: []sales.LineItemInput{
			{Key: "PFSL001", Quantity: 1},     // válida
			{Key: "29400011234", Quantity: 9}, // stock insuficiente
		},
		Now: testNow,
	})
	var lineErr *sales.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Line, "debe señalar la línea que falló")

	assert.Equal(t, entity.StatusAvailable, store.products["u1"].Status, "la línea 1 debe revertirse")
	assert.Equal(t, 1, store.products["u1"].Quantity)
	assert.Equal(t, 2, store.products["b1"].Quantity)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.items)
	assert.Empty(t, store.entries)
	assert.Zero(t, store.counters["sale:2025"], "el contador de ventas no debe avanzar")
	assert.Zero(t, store.counters["receipt"], "el contador de recibos no debe avanzar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Identificadores, totales y recibo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_IdentificadoresYTotales(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u1", "PFSL001", "111111111111111", testNow.Add(-time.Hour))
	seedBulk(store, "b1", "AFSL001", "29400011234", 10, entity.StatusAvailable, testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	override := decimal.NewFromInt(500)
	result, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Buyer:   sales.BuyerDetails{Name: "Jane Doe", Phone: "0700000000"},
		Items: []sales.LineItemInput{
			{Key: "PFSL001", Quantity: 1, UnitPrice: &override}, // 500 en vez de 550
			{Key: "29400011234", Quantity: 3},                   // 3 × 18 = 54
		},
		Now: testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, "FSL2025001", result.SaleID)
	assert.Equal(t, "0001", result.ReceiptNumber)
	assert.Equal(t, 4, result.TotalQuantity)
	assert.True(t, decimal.NewFromInt(554).Equal(result.TotalAmount),
		"total 500 + 54, recalculado desde las líneas: %s", result.TotalAmount)

	sale := store.sales["FSL2025001"]
	require.NotNil(t, sale)
	assert.Equal(t, "Jane Doe", sale.BuyerName)
	assert.True(t, sale.Subtotal.Equal(sale.TotalAmount))

	// El snapshot de la línea queda congelado.
	items, _ := (&fakeSaleRepo{s: store}).ListItems("FSL2025001")
	require.Len(t, items, 2)
	assert.Equal(t, "PFSL001", items[0].ProductCode)
	assert.Equal(t, "111111111111111", items[0].SKUValue)
	assert.True(t, override.Equal(items[0].UnitPrice))

	// Ledger: un asiento de salida por línea, con referencia a la venta.
	require.Len(t, store.entries, 2)
	for _, e := range store.entries {
		assert.Equal(t, entity.EntryTypeSale, e.EntryType)
		assert.Equal(t, "SALE-FSL2025001", e.ReferenceID)
		assert.Negative(t, e.Quantity)
	}
}

// Ventas consecutivas del mismo año llevan consecutivos y recibos crecientes.
func TestCreateSale_ConsecutivosPorAnio(t *testing.T) {
	store := newMemStore()
	seedSingle(store, "u1", "PFSL001", "111111111111111", testNow.Add(-2*time.Hour))
	seedSingle(store, "u2", "PFSL002", "222222222222222", testNow.Add(-time.Hour))
	uc := newCreateSaleUC(store)

	first, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "111111111111111", Quantity: 1}},
		Now:     testNow,
	})
	require.NoError(t, err)
	second, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "222222222222222", Quantity: 1}},
		Now:     testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, "FSL2025001", first.SaleID)
	assert.Equal(t, "FSL2025002", second.SaleID)
	assert.Equal(t, "0001", first.ReceiptNumber)
	assert.Equal(t, "0002", second.ReceiptNumber)
}

func TestCreateSale_LlaveInexistente(t *testing.T) {
	store := newMemStore()
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{
		ActorID: "seller-1",
		Items:   []sales.LineItemInput{{Key: "no-existe", Quantity: 1}},
		Now:     testNow,
	})
	var lineErr *sales.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, sales.RejectNotFound, lineErr.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_SinItemsEsInvalida(t *testing.T) {
	store := newMemStore()
	uc := newCreateSaleUC(store)

	_, err := uc.CreateSale(context.Background(), sales.CreateSaleInput{ActorID: "seller-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
