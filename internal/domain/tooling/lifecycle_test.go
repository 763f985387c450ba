package tooling_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTool(estado string) *entity.Tool {
	return &entity.Tool{ID: "t1", Nombre: "Torquímetro", Estado: estado, Activa: true}
}

func TestAssign_DesdeStock(t *testing.T) {
	tool := newTool(entity.ToolStock)

	tr, err := tooling.PlanAssign(tool, "emp-E", "turno mañana", "sup", now)
	require.NoError(t, err)
	tooling.Apply(tool, tr)

	assert.Equal(t, entity.ToolEnUso, tool.Estado)
	require.NotNil(t, tool.AssignedTo)
	assert.Equal(t, "emp-E", *tool.AssignedTo)
	assert.Equal(t, 1, tool.Historial.Len())
	last, _ := tool.Historial.Last()
	assert.Equal(t, entity.ToolAccionAsignacion, last.Accion)
	assert.Equal(t, entity.ToolStock, tr.From)
}

func TestAssign_ReasignarFalla(t *testing.T) {
	tool := newTool(entity.ToolStock)
	tr, err := tooling.PlanAssign(tool, "emp-E", "", "sup", now)
	require.NoError(t, err)
	tooling.Apply(tool, tr)

	_, err = tooling.PlanAssign(tool, "emp-F", "", "sup", now)
	require.ErrorIs(t, err, domain.ErrToolNotAvailable)
	assert.Equal(t, "emp-E", *tool.AssignedTo)
	assert.Equal(t, 1, tool.Historial.Len())
}

func TestAssign_Validaciones(t *testing.T) {
	_, err := tooling.PlanAssign(newTool(entity.ToolStock), " ", "", "sup", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := newTool(entity.ToolStock)
	inactive.Activa = false
	_, err = tooling.PlanAssign(inactive, "emp", "", "sup", now)
	assert.ErrorIs(t, err, domain.ErrToolNotAvailable)

	for _, e := range []string{entity.ToolDanada, entity.ToolMantenimiento, entity.ToolReparacionSencilla} {
		_, err = tooling.PlanAssign(newTool(e), "emp", "", "sup", now)
		assert.ErrorIs(t, err, domain.ErrToolNotAvailable, e)
	}
}

func TestReturn(t *testing.T) {
	cases := []struct {
		estado string
		want   string
	}{
		{"", entity.ToolStock},
		{entity.ToolDanada, entity.ToolDanada},
		{entity.ToolMantenimiento, entity.ToolMantenimiento},
		{entity.ToolReparacionSencilla, entity.ToolReparacionSencilla},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			tool := newTool(entity.ToolStock)
			tr, err := tooling.PlanAssign(tool, "emp", "", "sup", now)
			require.NoError(t, err)
			tooling.Apply(tool, tr)

			tr, err = tooling.PlanReturn(tool, c.estado, "ok", "sup", now.Add(3*time.Hour))
			require.NoError(t, err)
			tooling.Apply(tool, tr)

			assert.Equal(t, c.want, tool.Estado)
			assert.Nil(t, tool.AssignedTo)
			assert.Equal(t, 2, tool.Historial.Len())
			last, _ := tool.Historial.Last()
			assert.Equal(t, entity.ToolAccionDevolucion, last.Accion)
			assert.Equal(t, "emp", last.EmpleadoID)
		})
	}
}

func TestReturn_Errores(t *testing.T) {
	_, err := tooling.PlanReturn(newTool(entity.ToolStock), "", "", "sup", now)
	assert.ErrorIs(t, err, domain.ErrToolNotInUse)

	_, err = tooling.PlanReturn(newTool(entity.ToolEnUso), entity.ToolEnUso, "", "sup", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaintenance_DesdeCualquierEstado(t *testing.T) {
	next := now.AddDate(0, 3, 0)
	for _, e := range []string{entity.ToolStock, entity.ToolEnUso, entity.ToolDanada, entity.ToolMantenimiento, entity.ToolReparacionSencilla} {
		tool := newTool(e)
		emp := "emp"
		tool.AssignedTo = &emp

		tr, err := tooling.PlanMaintenance(tool, "cambio de batería", decimal.NewFromInt(50000), &next, "sup", now)
		require.NoError(t, err, e)
		assert.Empty(t, tr.From, "sin guarda de estado")
		tooling.Apply(tool, tr)

		assert.Equal(t, entity.ToolMantenimiento, tool.Estado)
		assert.Nil(t, tool.AssignedTo)
		require.NotNil(t, tool.UltimoMantenimiento)
		assert.Equal(t, now, *tool.UltimoMantenimiento)
		assert.Equal(t, next, *tool.ProximoMantenimiento)
		last, _ := tool.Historial.Last()
		assert.Equal(t, entity.ToolAccionMantenimiento, last.Accion)
		assert.True(t, last.Costo.Equal(decimal.NewFromInt(50000)))
	}
}

func TestMaintenance_CostoNegativo(t *testing.T) {
	_, err := tooling.PlanMaintenance(newTool(entity.ToolStock), "x", decimal.NewFromInt(-1), nil, "sup", now)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "costo")
}

func TestRepair(t *testing.T) {
	tool := newTool(entity.ToolDanada)
	tr, err := tooling.PlanRepair(tool, "soldadura", decimal.NewFromInt(12000), "sup", now)
	require.NoError(t, err)
	assert.Equal(t, entity.ToolDanada, tr.From)
	tooling.Apply(tool, tr)
	assert.Equal(t, entity.ToolStock, tool.Estado)

	_, err = tooling.PlanRepair(newTool(entity.ToolEnUso), "", decimal.Zero, "sup", now)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestApply_NoMutaHistorialAnterior(t *testing.T) {
	tool := newTool(entity.ToolStock)
	before := tool.Historial
	tr, err := tooling.PlanAssign(tool, "emp", "", "sup", now)
	require.NoError(t, err)
	tooling.Apply(tool, tr)

	assert.Equal(t, 0, before.Len())
	assert.Equal(t, 1, tool.Historial.Len())
}
