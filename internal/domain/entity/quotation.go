package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización. El flujo es plano: cualquier estado es alcanzable desde cualquier otro.
const (
	CotizacionPendiente  = "pendiente"
	CotizacionEnRevision = "en_revision"
	CotizacionAprobada   = "aprobada"
	CotizacionRechazada  = "rechazada"
)

// ValidEstadoCotizacion indica si e es un estado de cotización conocido.
func ValidEstadoCotizacion(e string) bool {
	switch e {
	case CotizacionPendiente, CotizacionEnRevision, CotizacionAprobada, CotizacionRechazada:
		return true
	}
	return false
}

// Estados de una línea de cotización.
const (
	LineaPendiente = "pendiente"
	LineaAprobado  = "aprobado"
	LineaEliminado = "eliminado"
)

// ValidEstadoLinea indica si e es un estado de línea conocido.
func ValidEstadoLinea(e string) bool {
	return e == LineaPendiente || e == LineaAprobado || e == LineaEliminado
}

// QuotationLine línea de producto de una cotización. LineID es estable durante toda
// la vida de la cotización y es la única forma de direccionar una línea.
type QuotationLine struct {
	LineID         int             `json:"line_id"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria"`
	Unidad         string          `json:"unidad"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	Proveedor      string          `json:"proveedor"`
	Estado         string          `json:"estado"`
	Aprobado       bool            `json:"aprobado"`
	Eliminado      bool            `json:"eliminado"`
}

// Quotation cotización de repuestos/servicios para un vehículo.
// Subtotal, IVA y Total son derivados: siempre se recalculan en el servidor.
type Quotation struct {
	ID        string
	Folio     string
	Cliente   string
	Empresa   string
	Placa     string
	Fecha     time.Time
	Estado    string
	Productos []QuotationLine
	Subtotal  decimal.Decimal
	IVA       decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
