// Package analytics contiene el tablero principal del taller.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
)

const (
	dashboardTopTools = 5 // herramientas en el widget de más usadas
	// DefaultLowStockThreshold cantidad a partir de la cual un producto cuenta como stock bajo.
	DefaultLowStockThreshold = 5
)

// DashboardUseCase arma el resumen del tablero. Solo lectura.
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	toolRepo          repository.ToolRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold <= 0 usa el valor por defecto.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, toolRepo repository.ToolRepository, lowStockThreshold int) *DashboardUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, toolRepo: toolRepo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary consulta en paralelo:
//  1. DashboardCounts     → conteos por recurso y estado
//  2. herramientas (todas) → top del mes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type countsResult struct {
		counts *repository.DashboardCounts
		err    error
	}
	type toolsResult struct {
		top []tooling.ToolUsage
		err error
	}
	countsCh := make(chan countsResult, 1)
	toolsCh := make(chan toolsResult, 1)

	go func() {
		c, err := uc.analyticsRepo.DashboardCounts(ctx, uc.lowStockThreshold)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		all, err := uc.toolRepo.ListAll(ctx)
		if err != nil {
			toolsCh <- toolsResult{err: err}
			return
		}
		toolsCh <- toolsResult{top: tooling.MostUsed(all, uc.now().AddDate(0, -1, 0), dashboardTopTools)}
	}()

	counts := <-countsCh
	tools := <-toolsCh
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if tools.err != nil {
		return nil, fmt.Errorf("dashboard: herramientas: %w", tools.err)
	}

	c := counts.counts
	open := 0
	for estado, n := range c.IngresosByEstado {
		if estado != entity.IngresoCompletado {
			open += n
		}
	}
	return &dto.DashboardResponse{
		Employees:          c.Employees,
		ActiveEmployees:    c.ActiveEmployees,
		Products:           c.Products,
		TotalCantidad:      c.TotalCantidad,
		LowStockProducts:   c.LowStockProducts,
		Bays:               c.Bays,
		OccupiedBays:       c.OccupiedBays,
		VehiclesByEstado:   nonNil(c.VehiclesByEstado),
		ToolsByEstado:      nonNil(c.ToolsByEstado),
		PendingQuotations:  c.QuotationsByEstado[entity.CotizacionPendiente],
		QuotationsByEstado: nonNil(c.QuotationsByEstado),
		OpenIngresos:       open,
		IngresosByEstado:   nonNil(c.IngresosByEstado),
		TopTools:           tools.top,
	}, nil
}

func nonNil(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
