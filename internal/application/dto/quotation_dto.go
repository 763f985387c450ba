package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// QuotationLineInput línea enviada por el cliente. Total nunca se lee: siempre se recalcula.
// LineID 0 indica una línea nueva.
type QuotationLineInput struct {
	LineID         int             `json:"line_id" validate:"min=0"`
	Nombre         string          `json:"nombre" validate:"max=300"`
	Categoria      string          `json:"categoria" validate:"max=100"`
	Unidad         string          `json:"unidad" validate:"max=30"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Proveedor      string          `json:"proveedor" validate:"max=200"`
	Estado         string          `json:"estado"`
	Aprobado       bool            `json:"aprobado"`
	Eliminado      bool            `json:"eliminado"`
}

// CreateQuotationRequest alta de cotización.
type CreateQuotationRequest struct {
	Placa     string               `json:"placa" validate:"required,max=10"`
	Empresa   string               `json:"empresa" validate:"required,max=200"`
	Cliente   string               `json:"cliente" validate:"max=200"`
	Fecha     *time.Time           `json:"fecha"`
	Productos []QuotationLineInput `json:"productos" validate:"dive"`
}

// UpdateQuotationRequest cambios parciales. Si Productos está presente se reemplaza la lista completa.
type UpdateQuotationRequest struct {
	Placa     *string               `json:"placa" validate:"omitempty,min=1,max=10"`
	Empresa   *string               `json:"empresa" validate:"omitempty,min=1,max=200"`
	Cliente   *string               `json:"cliente" validate:"omitempty,max=200"`
	Fecha     *time.Time            `json:"fecha"`
	Estado    *string               `json:"estado" validate:"omitempty,oneof=pendiente en_revision aprobada rechazada"`
	Productos *[]QuotationLineInput `json:"productos"`
}

// UpdateQuotationStatusRequest sobrescritura del estado.
type UpdateQuotationStatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_revision aprobada rechazada"`
}

// LinePatchRequest cambio sobre una línea direccionada por line_id o, si falta, por su
// posición (index, desde 0).
type LinePatchRequest struct {
	LineID    int     `json:"line_id" validate:"required_without=Index,min=0"`
	Index     *int    `json:"index" validate:"omitempty,min=0"`
	Estado    *string `json:"estado" validate:"omitempty,oneof=pendiente aprobado eliminado"`
	Aprobado  *bool   `json:"aprobado"`
	Eliminado *bool   `json:"eliminado"`
}

// UpdateQuotationProductsRequest cambios de líneas de una cotización.
type UpdateQuotationProductsRequest struct {
	Productos []LinePatchRequest `json:"productos" validate:"required,min=1,dive"`
}

// BatchLinePatchRequest cambio de línea que también indica la cotización.
type BatchLinePatchRequest struct {
	QuotationID string `json:"quotation_id" validate:"required"`
	LinePatchRequest
}

// BatchUpdateProductsRequest lote de cambios sobre varias cotizaciones; se aplica todo o nada.
type BatchUpdateProductsRequest struct {
	Updates []BatchLinePatchRequest `json:"updates" validate:"required,min=1,dive"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID        string                 `json:"id"`
	Folio     string                 `json:"folio"`
	Cliente   string                 `json:"cliente"`
	Empresa   string                 `json:"empresa"`
	Placa     string                 `json:"placa"`
	Fecha     time.Time              `json:"fecha"`
	Estado    string                 `json:"estado"`
	Productos []entity.QuotationLine `json:"productos"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	IVA       decimal.Decimal        `json:"iva"`
	Total     decimal.Decimal        `json:"total"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
