package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateToolRequest entrada para crear una herramienta; siempre inicia en stock.
type CreateToolRequest struct {
	SKU       string          `json:"sku" validate:"max=100"`
	Nombre    string          `json:"nombre" validate:"required,min=1,max=200"`
	Precio    decimal.Decimal `json:"precio"`
	Categoria string          `json:"categoria" validate:"max=100"`
	Proveedor string          `json:"proveedor" validate:"max=200"`
	Ubicacion string          `json:"ubicacion" validate:"max=200"`
}

// UpdateToolRequest cambios de datos descriptivos. Estado y asignación solo cambian por transiciones.
type UpdateToolRequest struct {
	SKU       *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Nombre    *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Precio    *decimal.Decimal `json:"precio"`
	Categoria *string          `json:"categoria" validate:"omitempty,max=100"`
	Proveedor *string          `json:"proveedor" validate:"omitempty,max=200"`
	Ubicacion *string          `json:"ubicacion" validate:"omitempty,max=200"`
}

// ToolResponse salida de una herramienta.
type ToolResponse struct {
	ID                   string          `json:"id"`
	SKU                  string          `json:"sku"`
	Nombre               string          `json:"nombre"`
	Precio               decimal.Decimal `json:"precio"`
	Categoria            string          `json:"categoria,omitempty"`
	Proveedor            string          `json:"proveedor,omitempty"`
	Ubicacion            string          `json:"ubicacion,omitempty"`
	Estado               string          `json:"estado"`
	AssignedTo           *string         `json:"assigned_to"`
	UltimoMantenimiento  *time.Time      `json:"ultimo_mantenimiento,omitempty"`
	ProximoMantenimiento *time.Time      `json:"proximo_mantenimiento,omitempty"`
	Activa               bool            `json:"activa"`
	HistorialCount       int             `json:"historial_count"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AssignToolRequest asignación a un empleado.
type AssignToolRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	Observaciones string `json:"observaciones" validate:"max=1000"`
}

// ReturnToolRequest devolución; estado vacío equivale a stock.
type ReturnToolRequest struct {
	Estado        string `json:"estado" validate:"omitempty,oneof=stock dañada mantenimiento reparacion_sencilla"`
	Observaciones string `json:"observaciones" validate:"max=1000"`
}

// MaintenanceRequest registro de mantenimiento.
type MaintenanceRequest struct {
	Descripcion          string          `json:"descripcion" validate:"required,max=1000"`
	Costo                decimal.Decimal `json:"costo"`
	ProximoMantenimiento *time.Time      `json:"proximo_mantenimiento"`
}

// RepairToolRequest reintegro a stock tras una reparación.
type RepairToolRequest struct {
	Observaciones string          `json:"observaciones" validate:"max=1000"`
	Costo         decimal.Decimal `json:"costo"`
}

// ToolStatsQuery parámetros de las estadísticas.
type ToolStatsQuery struct {
	Period string `query:"period" validate:"omitempty,oneof=week month year"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
