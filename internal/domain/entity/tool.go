package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una herramienta.
const (
	ToolStock              = "stock"
	ToolEnUso              = "en_uso"
	ToolDanada             = "dañada"
	ToolMantenimiento      = "mantenimiento"
	ToolReparacionSencilla = "reparacion_sencilla"
)

// ValidToolEstado indica si e es un estado de herramienta conocido.
func ValidToolEstado(e string) bool {
	switch e {
	case ToolStock, ToolEnUso, ToolDanada, ToolMantenimiento, ToolReparacionSencilla:
		return true
	}
	return false
}

// Acciones del historial de herramienta.
const (
	ToolAccionAsignacion    = "asignacion"
	ToolAccionDevolucion    = "devolucion"
	ToolAccionMantenimiento = "mantenimiento"
	ToolAccionReparacion    = "reparacion"
)

// ToolEvent entrada inmutable del historial de una herramienta.
type ToolEvent struct {
	Accion         string          `json:"accion"`
	Fecha          time.Time       `json:"fecha"`
	EmpleadoID     string          `json:"empleado_id,omitempty"`
	Observaciones  string          `json:"observaciones,omitempty"`
	Costo          decimal.Decimal `json:"costo"`
	EstadoAnterior string          `json:"estado_anterior"`
	EstadoNuevo    string          `json:"estado_nuevo"`
	Usuario        string          `json:"usuario,omitempty"`
}

// Tool herramienta como recurso propio (distinto de Product), con máquina de estados.
// El borrado es lógico (Activa=false) para conservar el historial.
type Tool struct {
	ID                   string
	SKU                  string
	Nombre               string
	Precio               decimal.Decimal
	Categoria            string
	Proveedor            string
	Ubicacion            string
	Estado               string
	AssignedTo           *string
	Historial            Log[ToolEvent]
	UltimoMantenimiento  *time.Time
	ProximoMantenimiento *time.Time
	Activa               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
