package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateVehicleRequest entrada para crear un vehículo.
type CreateVehicleRequest struct {
	Placa        string `json:"placa" validate:"required,max=10"`
	Compania     string `json:"compania" validate:"max=200"`
	TipoVehiculo string `json:"tipo_vehiculo" validate:"required,oneof=Trailer Van Botellero"`
	Estado       string `json:"estado" validate:"omitempty,oneof=cotizacion mantenimiento reparado"`
}

// UpdateVehicleRequest cambios parciales de un vehículo.
type UpdateVehicleRequest struct {
	Placa        *string `json:"placa" validate:"omitempty,max=10"`
	Compania     *string `json:"compania" validate:"omitempty,max=200"`
	TipoVehiculo *string `json:"tipo_vehiculo" validate:"omitempty,oneof=Trailer Van Botellero"`
	Estado       *string `json:"estado" validate:"omitempty,oneof=cotizacion mantenimiento reparado"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID               string                   `json:"id"`
	Placa            string                   `json:"placa"`
	Compania         string                   `json:"compania"`
	TipoVehiculo     string                   `json:"tipo_vehiculo"`
	Estado           string                   `json:"estado"`
	EmpleadoAsignado *string                  `json:"empleado_asignado"`
	Productos        []entity.AssignedProduct `json:"productos"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// AssignEmployeeRequest fija el empleado asignado; null lo libera.
type AssignEmployeeRequest struct {
	EmployeeID *string `json:"employee_id"`
}

// UpdateVehicleStatusRequest cambio de estado.
type UpdateVehicleStatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=cotizacion mantenimiento reparado"`
}

// AssignProductRequest asignación de unidades de inventario a un vehículo.
type AssignProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Cantidad  int    `json:"cantidad" validate:"required,min=1"`
}
