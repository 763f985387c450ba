package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	Nombre          string     `json:"nombre" validate:"required,min=1,max=200"`
	Email           string     `json:"email" validate:"omitempty,email"`
	Telefono        string     `json:"telefono" validate:"max=30"`
	Cargo           string     `json:"cargo" validate:"max=100"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Activo          *bool      `json:"activo"`
}

// UpdateEmployeeRequest cambios parciales de un empleado.
type UpdateEmployeeRequest struct {
	Nombre          *string    `json:"nombre" validate:"omitempty,min=1,max=200"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	Telefono        *string    `json:"telefono" validate:"omitempty,max=30"`
	Cargo           *string    `json:"cargo" validate:"omitempty,max=100"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Activo          *bool      `json:"activo"`
}

// EmployeeResponse salida de un empleado con sus entregas.
type EmployeeResponse struct {
	ID              string            `json:"id"`
	Nombre          string            `json:"nombre"`
	Email           string            `json:"email,omitempty"`
	Telefono        string            `json:"telefono,omitempty"`
	Cargo           string            `json:"cargo,omitempty"`
	FechaNacimiento *time.Time        `json:"fecha_nacimiento,omitempty"`
	Activo          bool              `json:"activo"`
	Entregas        []entity.Delivery `json:"entregas"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// DeliverProductRequest entrega de unidades de un producto a un empleado.
type DeliverProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Cantidad  int    `json:"cantidad" validate:"required,min=1"`
}

// AssignVehicleRequest asignación de un vehículo a un empleado.
type AssignVehicleRequest struct {
	VehiculoID string `json:"vehiculo_id" validate:"required"`
}
