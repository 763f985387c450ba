package quotation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func ref(placa, empresa, proveedor, nombre string) LineRef {
	return LineRef{Placa: placa, Empresa: empresa, Line: entity.QuotationLine{
		Nombre: nombre, Proveedor: proveedor, PrecioUnitario: decimal.NewFromInt(1000),
	}}
}

func TestSuggest_DeduplicaPorClaveCompuesta(t *testing.T) {
	refs := []LineRef{
		ref("ABC123", "Transportes Andinos", "Lubricantes Medellín", "Aceite 15W40"),
		ref("ABC123", "Transportes Andinos", "Lubricantes Medellín", "Filtro"),
		ref("ABC123", "Transportes Andinos", "Repuestos del Norte", "Filtro"),
		ref("XYZ987", "Lácteos del Valle", "Lubricantes Medellín", "Aceite"),
	}

	out := Suggest(refs, "medellin", 0)

	assert.Len(t, out, 2)
	assert.Equal(t, "Aceite 15W40", out[0].Nombre)
	assert.Equal(t, "XYZ987", out[1].Placa)
	assert.Equal(t, "1000.00", out[0].PrecioUnitario)
}

func TestSuggest_CoincidePorPlacaYEmpresa(t *testing.T) {
	refs := []LineRef{
		ref("ABC123", "Transportes Andinos", "P1", "x"),
		ref("XYZ987", "Lácteos del Valle", "P2", "y"),
	}

	assert.Len(t, Suggest(refs, "abc", 0), 1)
	assert.Len(t, Suggest(refs, "LACTEOS", 0), 1)
	assert.Empty(t, Suggest(refs, "zzz", 0))
	assert.Empty(t, Suggest(refs, "  ", 0))
}

func TestSuggest_Limite(t *testing.T) {
	refs := []LineRef{ref("AAA111", "E", "P1", "x"), ref("AAA112", "E", "P2", "y"), ref("AAA113", "E", "P3", "z")}
	assert.Len(t, Suggest(refs, "aaa", 2), 2)
}
