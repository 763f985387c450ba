package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func fixedExporter() *Exporter {
	return &Exporter{now: func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestExportTools(t *testing.T) {
	emp := "emp-1"
	data, err := fixedExporter().ExportTools(context.Background(), []*entity.Tool{
		{SKU: "SKU-AAAA0001", Nombre: "Gata hidráulica", Estado: entity.ToolEnUso, AssignedTo: &emp, Precio: decimal.NewFromInt(350000)},
		{SKU: "SKU-AAAA0002", Nombre: "Torquímetro", Estado: entity.ToolStock, Precio: decimal.Zero},
	})
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Herramientas"}, f.GetSheetList())

	rows, err := f.GetRows("Herramientas")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Generado: 2026-05-04 10:00", rows[1][0])
	assert.Equal(t, "SKU", rows[3][0])
	assert.Equal(t, "Gata hidráulica", rows[4][1])
	assert.Equal(t, "emp-1", rows[4][6])
	assert.Equal(t, "350000", rows[4][7])
}

func TestExportQuotations(t *testing.T) {
	q := &entity.Quotation{
		Folio: "COT-0001", Empresa: "Transportes Andinos", Placa: "ABC123", Estado: entity.CotizacionPendiente,
		Fecha: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Productos: []entity.QuotationLine{
			{LineID: 1, Nombre: "Filtro", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(100000), Total: decimal.NewFromInt(200000)},
			{LineID: 2, Nombre: "Descartado", Eliminado: true},
		},
		Subtotal: decimal.NewFromInt(200000), IVA: decimal.NewFromInt(38000), Total: decimal.NewFromInt(238000),
	}

	data, err := fixedExporter().ExportQuotations(context.Background(), []*entity.Quotation{q})
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Cotizaciones", "Productos"}, f.GetSheetList())

	rows, err := f.GetRows("Cotizaciones")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "COT-0001", rows[4][0])
	assert.Equal(t, "238000", rows[4][8])

	lines, err := f.GetRows("Productos")
	require.NoError(t, err)
	require.Len(t, lines, 5, "la línea eliminada no se exporta")
	assert.Equal(t, "Filtro", lines[4][2])
}

func TestExportQuotations_Vacio(t *testing.T) {
	data, err := fixedExporter().ExportQuotations(context.Background(), nil)
	require.NoError(t, err)
	rows, err := open(t, data).GetRows("Cotizaciones")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
