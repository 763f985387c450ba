// Package pdf genera la representación imprimible de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller      │  Folio + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Empresa / Cliente / Placa                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Unidad | Proveedor | P.Unit | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA 19% / TOTAL                         │
//	│  Leyenda de vigencia                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/quotations"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

var _ quotations.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quotations.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	workshop string
}

// NewMarotoPDFGenerator construye el generador. workshop es el nombre impreso en el encabezado.
func NewMarotoPDFGenerator(workshop string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{workshop: nonEmpty(workshop, "Taller")}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes. Las líneas eliminadas no se imprimen.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(_ context.Context, q *entity.Quotation) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Folio, true).
		WithAuthor(g.workshop, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.workshop, q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(q.Productos)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Precios en pesos colombianos (COP). IVA calculado a la tarifa general del 19%. "+
			"Los valores pueden variar según disponibilidad del proveedor.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(workshop string, q *entity.Quotation) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(workshop, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cotización de repuestos y servicios", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(q.Folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+q.Fecha.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Estado: "+strings.ReplaceAll(q.Estado, "_", " "), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

func clienteRow(q *entity.Quotation) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.Empresa, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Placa: %s",
				nonEmpty(q.Cliente, "—"),
				nonEmpty(q.Placa, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Proveedor", 2, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableDetailRows(lines []entity.QuotationLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		if l.Eliminado {
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.Nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(l.Unidad, "und"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Proveedor,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(l.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money(l.Cantidad.Mul(l.PrecioUnitario)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	if len(result) == 0 {
		result = append(result, row.New(7).Add(col.New(12).Add(
			text.New("Sin productos cotizados", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	return result
}

func totalsRow(q *entity.Quotation) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 14,
		})
	}

	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("IVA 19%:", 7),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(money(q.Subtotal), 1),
			value(money(q.IVA), 7),
			grand(money(q.Total), 1),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y sin centavos cuando son cero.
// Ej: 238000 → "$238.000", 1500.5 → "$1.500,50"
func money(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)
	whole := d.Truncate(0)
	s := formatMoney(whole.String())
	if cents := d.Sub(whole).Shift(2).IntPart(); cents != 0 {
		s += fmt.Sprintf(",%02d", cents)
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
