package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoriaHerramienta = "Herramienta"
	CategoriaConsumible  = "Consumible"
	CategoriaRepuesto    = "Repuesto"
	CategoriaInsumo      = "Insumo"
	CategoriaOtro        = "Otro"
)

// ValidCategoria indica si c es una categoría de producto conocida.
func ValidCategoria(c string) bool {
	switch c {
	case CategoriaHerramienta, CategoriaConsumible, CategoriaRepuesto, CategoriaInsumo, CategoriaOtro:
		return true
	}
	return false
}

// Acciones del historial de producto.
const (
	AccionCreacion           = "creacion"
	AccionAjuste             = "ajuste"
	AccionEntrega            = "entrega"
	AccionDevolucionProducto = "devolucion"
	AccionIngresoInventario  = "ingreso_inventario"
	AccionAsignacionVehiculo = "asignacion_vehiculo"
)

// HistoryEntry entrada inmutable del historial de un producto.
type HistoryEntry struct {
	Accion   string    `json:"accion"`
	Detalles string    `json:"detalles"`
	Fecha    time.Time `json:"fecha"`
	Usuario  string    `json:"usuario,omitempty"`
}

// ProductAssignment asignación de una herramienta-producto a un empleado.
type ProductAssignment struct {
	EmpleadoID     string    `json:"empleado_id"`
	EmpleadoNombre string    `json:"empleado_nombre"`
	Cantidad       int       `json:"cantidad"`
	Fecha          time.Time `json:"fecha"`
}

// Product representa un artículo del inventario. Cantidad nunca es negativa;
// cada cambio de cantidad anexa una entrada al Historial.
type Product struct {
	ID             string
	SKU            string
	Nombre         string
	Descripcion    string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Categoria      string

	// Campos propios de la categoría Herramienta.
	Estado               string
	Ubicacion            string
	Asignaciones         []ProductAssignment
	UltimoMantenimiento  *time.Time
	ProximoMantenimiento *time.Time

	Historial Log[HistoryEntry]
	CreatedAt time.Time
	UpdatedAt time.Time
}
