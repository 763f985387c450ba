package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type stubAnalytics struct {
	counts    *repository.DashboardCounts
	err       error
	threshold int
}

func (s *stubAnalytics) DashboardCounts(_ context.Context, threshold int) (*repository.DashboardCounts, error) {
	s.threshold = threshold
	return s.counts, s.err
}

func TestGetSummary(t *testing.T) {
	now := time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC)
	emp := "e1"
	tools := apptest.NewTools(&entity.Tool{
		ID: "t1", Nombre: "Gata", Estado: entity.ToolEnUso, AssignedTo: &emp, Activa: true,
		Historial: entity.NewLog(entity.ToolEvent{Accion: entity.ToolAccionAsignacion, EmpleadoID: emp, Fecha: now.Add(-time.Hour)}),
	})
	stub := &stubAnalytics{counts: &repository.DashboardCounts{
		Employees:          4,
		ActiveEmployees:    3,
		Products:           10,
		TotalCantidad:      250,
		OccupiedBays:       2,
		QuotationsByEstado: map[string]int{entity.CotizacionPendiente: 3, entity.CotizacionAprobada: 1},
		IngresosByEstado:   map[string]int{entity.IngresoIngresado: 2, entity.IngresoEnReparacion: 1, entity.IngresoCompletado: 5},
	}}
	uc := NewDashboardUseCase(stub, tools, 0)
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultLowStockThreshold, stub.threshold)
	assert.Equal(t, 4, out.Employees)
	assert.Equal(t, int64(250), out.TotalCantidad)
	assert.Equal(t, 3, out.PendingQuotations)
	assert.Equal(t, 3, out.OpenIngresos)
	assert.NotNil(t, out.VehiclesByEstado)
	require.Len(t, out.TopTools, 1)
	assert.Equal(t, "t1", out.TopTools[0].ToolID)
}

func TestGetSummary_PropagatesError(t *testing.T) {
	uc := NewDashboardUseCase(&stubAnalytics{err: errors.New("boom")}, apptest.NewTools(), 3)
	_, err := uc.GetSummary(context.Background())
	assert.ErrorContains(t, err, "conteos")
}
