package dto

import "github.com/jhoicas/Taller-api/internal/domain/tooling"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Employees          int            `json:"employees"`
	ActiveEmployees    int            `json:"active_employees"`
	Products           int            `json:"products"`
	TotalCantidad      int64          `json:"total_cantidad"`
	LowStockProducts   int            `json:"low_stock_products"`
	Bays               int            `json:"bays"`
	OccupiedBays       int            `json:"occupied_bays"`
	VehiclesByEstado   map[string]int `json:"vehicles_by_estado"`
	ToolsByEstado      map[string]int `json:"tools_by_estado"`
	PendingQuotations  int            `json:"pending_quotations"`
	QuotationsByEstado map[string]int `json:"quotations_by_estado"`
	OpenIngresos       int            `json:"open_ingresos"`
	IngresosByEstado   map[string]int `json:"ingresos_by_estado"`
	// TopTools herramientas más asignadas en el último mes.
	TopTools []tooling.ToolUsage `json:"top_tools"`
}
