// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio │ Recibo + Fecha   │
//	│  ───────────────────────────────────────────  │
//	│  VENTA: N° de venta + vendedor                │
//	│  COMPRADOR: Nombre + teléfono + documento     │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | SKU | P.Unit | Total │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Subtotal / TOTAL                    │
//	│  Marca de REVERSADA si aplica                 │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	BusinessName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(businessName string) *MarotoReceiptGenerator {
	if businessName == "" {
		businessName = "FieldMax"
	}
	return &MarotoReceiptGenerator{BusinessName: businessName}
}

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	items []*entity.SaleItem,
	seller *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+sale.ReceiptNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.BusinessName, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(saleInfoRow(sale, seller))
	if sale.BuyerName != "" {
		m.AddRows(buyerRow(sale))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	if sale.IsReversed {
		m.AddRows(reversedRow(sale))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq) y N° de recibo + fecha (der).
func headerRow(businessName string, sale *entity.Sale) core.Row {
	fecha := sale.SaleDate.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(6).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+sale.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// saleInfoRow: número de venta y vendedor.
func saleInfoRow(sale *entity.Sale, seller *entity.User) core.Row {
	sellerName := "—"
	if seller != nil {
		sellerName = seller.Name
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Venta: %s   |   Vendedor: %s", sale.SaleID, sellerName),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		),
	)
}

// buyerRow: datos del comprador.
func buyerRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   Doc: %s",
				sale.BuyerName,
				nonEmpty(sale.BuyerPhone, "—"),
				nonEmpty(sale.BuyerIDNumber, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 4, align.Left),
		h("SKU", 3, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []*entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(it.SKUValue, it.ProductCode),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.TotalPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Subtotal:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 7,
			}),
		),
		col.New(3).Add(
			text.New(sale.Subtotal.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New(sale.TotalAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 7,
			}),
		),
	)
}

// reversedRow: marca visible cuando la venta fue anulada.
func reversedRow(sale *entity.Sale) core.Row {
	motivo := ""
	if sale.ReversalReason != "" {
		motivo = " — " + sale.ReversalReason
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("VENTA REVERSADA"+motivo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorRed, Top: 3,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
