package repository

import "context"

// DashboardCounts conteos crudos para el tablero principal.
type DashboardCounts struct {
	Employees          int
	ActiveEmployees    int
	Products           int
	TotalCantidad      int64
	LowStockProducts   int
	Bays               int
	OccupiedBays       int
	VehiclesByEstado   map[string]int
	ToolsByEstado      map[string]int
	QuotationsByEstado map[string]int
	IngresosByEstado   map[string]int
}

// AnalyticsRepository consultas de lectura para el tablero. No modifica datos.
type AnalyticsRepository interface {
	// DashboardCounts lowStockThreshold define el umbral de "stock bajo" (cantidad <= umbral).
	DashboardCounts(ctx context.Context, lowStockThreshold int) (*DashboardCounts, error)
}
