package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. SKU vacío se autogenera.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"max=100"`
	Nombre         string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad" validate:"min=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Categoria      string          `json:"categoria" validate:"required,oneof=Herramienta Consumible Repuesto Insumo Otro"`
	Estado         string          `json:"estado" validate:"max=50"`
	Ubicacion      string          `json:"ubicacion" validate:"max=200"`
}

// UpdateProductRequest cambios parciales. Cantidad distinta a la actual registra un ajuste.
type UpdateProductRequest struct {
	Nombre               *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion          *string          `json:"descripcion"`
	Cantidad             *int             `json:"cantidad" validate:"omitempty,min=0"`
	PrecioUnitario       *decimal.Decimal `json:"precio_unitario"`
	Categoria            *string          `json:"categoria" validate:"omitempty,oneof=Herramienta Consumible Repuesto Insumo Otro"`
	Estado               *string          `json:"estado" validate:"omitempty,max=50"`
	Ubicacion            *string          `json:"ubicacion" validate:"omitempty,max=200"`
	UltimoMantenimiento  *time.Time       `json:"ultimo_mantenimiento"`
	ProximoMantenimiento *time.Time       `json:"proximo_mantenimiento"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                   string                     `json:"id"`
	SKU                  string                     `json:"sku"`
	Nombre               string                     `json:"nombre"`
	Descripcion          string                     `json:"descripcion"`
	Cantidad             int                        `json:"cantidad"`
	PrecioUnitario       decimal.Decimal            `json:"precio_unitario"`
	Categoria            string                     `json:"categoria"`
	Estado               string                     `json:"estado,omitempty"`
	Ubicacion            string                     `json:"ubicacion,omitempty"`
	Asignaciones         []entity.ProductAssignment `json:"asignaciones,omitempty"`
	UltimoMantenimiento  *time.Time                 `json:"ultimo_mantenimiento,omitempty"`
	ProximoMantenimiento *time.Time                 `json:"proximo_mantenimiento,omitempty"`
	CreatedAt            time.Time                  `json:"created_at"`
	UpdatedAt            time.Time                  `json:"updated_at"`
}

// SetQuantityRequest fija la cantidad absoluta.
type SetQuantityRequest struct {
	Cantidad *int `json:"cantidad" validate:"required,min=0"`
}

// AddToInventoryRequest entrada de mercancía por SKU: suma a un producto existente o lo crea.
type AddToInventoryRequest struct {
	SKU            string          `json:"sku" validate:"required,max=100"`
	Nombre         string          `json:"nombre" validate:"max=200"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad" validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Categoria      string          `json:"categoria" validate:"omitempty,oneof=Herramienta Consumible Repuesto Insumo Otro"`
}

// ReturnToInventoryRequest devolución de unidades al inventario.
type ReturnToInventoryRequest struct {
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
	Empleado string `json:"empleado" validate:"max=200"`
}

// ProductCountResponse conteo de productos y unidades.
type ProductCountResponse struct {
	Count         int   `json:"count"`
	TotalCantidad int64 `json:"total_cantidad"`
}
