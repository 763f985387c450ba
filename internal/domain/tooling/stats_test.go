package tooling

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

var base = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func ev(accion, emp string, at time.Time, costo int64) entity.ToolEvent {
	return entity.ToolEvent{Accion: accion, EmpleadoID: emp, Fecha: at, Costo: decimal.NewFromInt(costo)}
}

func sampleTools() []*entity.Tool {
	return []*entity.Tool{
		{ID: "a", Nombre: "Gata", Historial: entity.NewLog(
			ev(entity.ToolAccionAsignacion, "e1", base, 0),
			ev(entity.ToolAccionDevolucion, "e1", base.Add(2*time.Hour), 0),
			ev(entity.ToolAccionAsignacion, "e2", base.Add(24*time.Hour), 0),
			ev(entity.ToolAccionDevolucion, "e2", base.Add(28*time.Hour), 0),
			ev(entity.ToolAccionMantenimiento, "", base.Add(30*time.Hour), 40000),
		)},
		{ID: "b", Nombre: "Pulidora", Historial: entity.NewLog(
			ev(entity.ToolAccionAsignacion, "e1", base.AddDate(0, -2, 0), 0),
			ev(entity.ToolAccionAsignacion, "e1", base.Add(time.Hour), 0),
			ev(entity.ToolAccionReparacion, "", base.Add(5*time.Hour), 10000),
		)},
		{ID: "c", Nombre: "Llave", Historial: entity.NewLog[entity.ToolEvent]()},
	}
}

func TestPeriodStart(t *testing.T) {
	s, err := PeriodStart("week", base)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, 0, -7), s)

	s, err = PeriodStart("", base)
	require.NoError(t, err)
	assert.Equal(t, base.AddDate(0, -1, 0), s)

	_, err = PeriodStart("decade", base)
	assert.Error(t, err)
}

func TestMostUsed(t *testing.T) {
	since := base.AddDate(0, -1, 0)
	out := MostUsed(sampleTools(), since, 10)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ToolID)
	assert.Equal(t, 2, out[0].Usos)
	assert.Equal(t, 1, out[1].Usos, "la asignación de hace dos meses queda fuera")

	assert.Len(t, MostUsed(sampleTools(), since, 1), 1)
}

func TestTopEmployees(t *testing.T) {
	out := TopEmployees(sampleTools(), time.Time{}, 0)
	require.Len(t, out, 2)
	assert.Equal(t, EmployeeUsage{EmpleadoID: "e1", Usos: 3}, out[0])
	assert.Equal(t, EmployeeUsage{EmpleadoID: "e2", Usos: 1}, out[1])
}

func TestUsageDuration(t *testing.T) {
	sum := UsageDuration(sampleTools())
	assert.Equal(t, 2, sum.Usos)
	assert.Equal(t, 3.0, sum.PromedioHoras)
	require.Len(t, sum.PorHerramienta, 1)
	assert.Equal(t, "a", sum.PorHerramienta[0].ToolID)
}

func TestMaintenanceCost(t *testing.T) {
	sum := MaintenanceCost(sampleTools(), base)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 2, sum.Mantenimientos)
	require.Len(t, sum.PorHerramienta, 2)
	assert.Equal(t, "a", sum.PorHerramienta[0].ToolID)

	empty := MaintenanceCost(sampleTools(), base.AddDate(1, 0, 0))
	assert.True(t, empty.Total.IsZero())
	assert.Empty(t, empty.PorHerramienta)
}
