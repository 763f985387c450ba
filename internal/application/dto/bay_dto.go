package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// BayRequest alta o edición de una bahía.
type BayRequest struct {
	Nombre    string              `json:"nombre" validate:"required,min=1,max=100"`
	Vehiculos []entity.BayVehicle `json:"vehiculos" validate:"dive"`
}

// BayResponse salida de una bahía.
type BayResponse struct {
	ID        string              `json:"id"`
	Nombre    string              `json:"nombre"`
	Vehiculos []entity.BayVehicle `json:"vehiculos"`
	Ocupada   bool                `json:"ocupada"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ProviderRequest alta o edición de un proveedor.
type ProviderRequest struct {
	Nombre     string               `json:"nombre" validate:"required,min=1,max=200"`
	Empresa    string               `json:"empresa" validate:"max=200"`
	Direccion  string               `json:"direccion" validate:"max=300"`
	Telefono   string               `json:"telefono" validate:"max=30"`
	NIT        string               `json:"nit" validate:"max=30"`
	MetodoPago entity.PaymentMethod `json:"metodo_pago"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID         string               `json:"id"`
	Nombre     string               `json:"nombre"`
	Empresa    string               `json:"empresa"`
	Direccion  string               `json:"direccion"`
	Telefono   string               `json:"telefono"`
	NIT        string               `json:"nit"`
	MetodoPago entity.PaymentMethod `json:"metodo_pago"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}
