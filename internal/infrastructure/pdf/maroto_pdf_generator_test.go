package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func TestGenerateQuotationPDF(t *testing.T) {
	q := &entity.Quotation{
		Folio:   "COT-0007",
		Empresa: "Transportes Andinos",
		Cliente: "Laura Gómez",
		Placa:   "ABC123",
		Fecha:   time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Estado:  entity.CotizacionEnRevision,
		Productos: []entity.QuotationLine{
			{LineID: 1, Nombre: "Filtro de aceite", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(50000)},
			{LineID: 2, Nombre: "Pastillas", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(9000), Eliminado: true},
		},
		Subtotal: decimal.NewFromInt(100000),
		IVA:      decimal.NewFromInt(19000),
		Total:    decimal.NewFromInt(119000),
	}

	out, err := NewMarotoPDFGenerator("Taller Central").GenerateQuotationPDF(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$238.000", money(decimal.NewFromInt(238000)))
	assert.Equal(t, "$1.500,50", money(decimal.RequireFromString("1500.5")))
	assert.Equal(t, "$0,05", money(decimal.RequireFromString("0.05")))
	assert.Equal(t, "-$1.000", money(decimal.NewFromInt(-1000)))
	assert.Equal(t, "$999", money(decimal.NewFromInt(999)))
}
