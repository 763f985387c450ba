package quotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/quotation"
)

func line(nombre string, cantidad, precio int64) entity.QuotationLine {
	return entity.QuotationLine{
		Nombre:         nombre,
		Cantidad:       decimal.NewFromInt(cantidad),
		PrecioUnitario: decimal.NewFromInt(precio),
	}
}

func TestRecalculate_EjemploFiltroAceite(t *testing.T) {
	q := &entity.Quotation{Productos: []entity.QuotationLine{
		line("Filtro", 2, 10000),
		line("Aceite", 1, 25000),
	}}

	quotation.Recalculate(q)

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(45000)), "subtotal: %s", q.Subtotal)
	assert.True(t, q.IVA.Equal(decimal.NewFromInt(8550)), "iva: %s", q.IVA)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(53550)), "total: %s", q.Total)
	assert.True(t, q.Productos[0].Total.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, entity.LineaPendiente, q.Productos[0].Estado)
}

func TestRecalculate_IgnoraTotalesDelCliente(t *testing.T) {
	l := line("Filtro", 3, 1000)
	l.Total = decimal.NewFromInt(1)
	q := &entity.Quotation{
		Productos: []entity.QuotationLine{l},
		Subtotal:  decimal.NewFromInt(999999),
		Total:     decimal.NewFromInt(999999),
	}

	quotation.Recalculate(q)

	assert.True(t, q.Productos[0].Total.Equal(decimal.NewFromInt(3000)))
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(3000)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(3570)))
}

func TestCompute_ExcluyeEliminadas(t *testing.T) {
	eliminada := line("Aceite", 1, 25000)
	eliminada.Eliminado = true

	tot := quotation.Compute([]entity.QuotationLine{line("Filtro", 2, 10000), eliminada})

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(20000)))
	assert.True(t, tot.IVA.Equal(decimal.NewFromInt(3800)))
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(23800)))
}

func TestCompute_RedondeoADosDecimales(t *testing.T) {
	l := entity.QuotationLine{
		Nombre:         "Grasa",
		Cantidad:       decimal.RequireFromString("1.5"),
		PrecioUnitario: decimal.RequireFromString("333.33"),
	}

	tot := quotation.Compute([]entity.QuotationLine{l})

	assert.Equal(t, "500.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "95.00", tot.IVA.StringFixed(2))
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.IVA)))
}

func TestFolio(t *testing.T) {
	assert.Equal(t, "COT-0001", quotation.FormatFolio(1))
	assert.Equal(t, "COT-0042", quotation.FormatFolio(42))
	assert.Equal(t, "COT-12345", quotation.FormatFolio(12345))
	assert.Equal(t, int64(42), quotation.ParseFolio("COT-0042"))
	assert.Equal(t, int64(0), quotation.ParseFolio("XYZ"))
}

func TestValidateLines(t *testing.T) {
	err := quotation.ValidateLines(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := []entity.QuotationLine{
		{Nombre: "", Cantidad: decimal.Zero, PrecioUnitario: decimal.NewFromInt(-1)},
	}
	err = quotation.ValidateLines(bad)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "productos[0].nombre")
	assert.Contains(t, ve.Fields, "productos[0].cantidad")
	assert.Contains(t, ve.Fields, "productos[0].precio_unitario")

	assert.NoError(t, quotation.ValidateLines([]entity.QuotationLine{line("Filtro", 1, 0)}))
}

func TestAssignLineIDs(t *testing.T) {
	lines := []entity.QuotationLine{line("a", 1, 1), {LineID: 5, Nombre: "b"}, line("c", 1, 1)}
	require.NoError(t, quotation.AssignLineIDs(lines))
	assert.Equal(t, 6, lines[0].LineID)
	assert.Equal(t, 5, lines[1].LineID)
	assert.Equal(t, 7, lines[2].LineID)

	dup := []entity.QuotationLine{{LineID: 2}, {LineID: 2}}
	assert.ErrorIs(t, quotation.AssignLineIDs(dup), domain.ErrInvalidInput)
}

func TestApplyPatches_EliminarLineaRecalcula(t *testing.T) {
	q := &entity.Quotation{Productos: []entity.QuotationLine{
		line("Filtro", 2, 10000),
		line("Aceite", 1, 25000),
	}}
	require.NoError(t, quotation.AssignLineIDs(q.Productos))
	quotation.Recalculate(q)

	yes := true
	err := quotation.ApplyPatches(q, []quotation.LinePatch{{LineID: q.Productos[0].LineID, Eliminado: &yes}})
	require.NoError(t, err)

	require.Len(t, q.Productos, 2, "la línea eliminada se conserva")
	assert.True(t, q.Productos[0].Eliminado)
	assert.Equal(t, entity.LineaEliminado, q.Productos[0].Estado)
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(25000)))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(29750)))
}

func TestApplyPatches_AprobarYLineaInexistente(t *testing.T) {
	q := &entity.Quotation{Productos: []entity.QuotationLine{line("Filtro", 1, 100)}}
	require.NoError(t, quotation.AssignLineIDs(q.Productos))

	yes := true
	require.NoError(t, quotation.ApplyPatches(q, []quotation.LinePatch{{LineID: 1, Aprobado: &yes}}))
	assert.Equal(t, entity.LineaAprobado, q.Productos[0].Estado)

	err := quotation.ApplyPatches(q, []quotation.LinePatch{{LineID: 99, Aprobado: &yes}})
	assert.ErrorIs(t, err, domain.ErrQuotationLineNotFound)
}

func TestApplyPatches_PorIndice(t *testing.T) {
	q := &entity.Quotation{Productos: []entity.QuotationLine{
		line("Filtro", 1, 100),
		line("Aceite", 1, 300),
	}}
	require.NoError(t, quotation.AssignLineIDs(q.Productos))
	quotation.Recalculate(q)

	second, yes := 1, true
	require.NoError(t, quotation.ApplyPatches(q, []quotation.LinePatch{{Index: &second, Eliminado: &yes}}))
	assert.True(t, q.Productos[1].Eliminado)
	assert.False(t, q.Productos[0].Eliminado)
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(100)))

	fuera := 2
	err := quotation.ApplyPatches(q, []quotation.LinePatch{{Index: &fuera, Aprobado: &yes}})
	assert.ErrorIs(t, err, domain.ErrQuotationLineNotFound)

	err = quotation.ApplyPatches(q, []quotation.LinePatch{{Aprobado: &yes}})
	assert.ErrorIs(t, err, domain.ErrQuotationLineNotFound)

	require.NoError(t, quotation.ApplyPatches(q, []quotation.LinePatch{{LineID: q.Productos[0].LineID, Index: &fuera, Aprobado: &yes}}),
		"line_id tiene prioridad sobre index")
	assert.True(t, q.Productos[0].Aprobado)
}
