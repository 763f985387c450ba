package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateIngresoRequest campos de formulario del ingreso. Reparaciones llega como JSON en el campo "reparaciones".
type CreateIngresoRequest struct {
	FechaIngreso      *time.Time      `json:"fecha_ingreso" form:"fecha_ingreso"`
	Empresa           string          `json:"empresa" form:"empresa" validate:"required,max=200"`
	ConductorNombre   string          `json:"conductor_nombre" form:"conductor_nombre" validate:"required,max=200"`
	ConductorTelefono string          `json:"conductor_telefono" form:"conductor_telefono" validate:"required,max=30"`
	ConductorCedula   string          `json:"conductor_cedula" form:"conductor_cedula" validate:"max=30"`
	VehiculoPlaca     string          `json:"vehiculo_placa" form:"vehiculo_placa" validate:"required,max=10"`
	VehiculoTipo      string          `json:"vehiculo_tipo" form:"vehiculo_tipo" validate:"required,max=50"`
	Reparaciones      []entity.Repair `json:"reparaciones" form:"-"`
	Observaciones     string          `json:"observaciones" form:"observaciones"`
}

// UpdateIngresoRequest cambios permitidos sobre un ingreso.
type UpdateIngresoRequest struct {
	Estado        *string          `json:"estado" validate:"omitempty,oneof=ingresado en_revision en_reparacion completado"`
	Observaciones *string          `json:"observaciones"`
	Reparaciones  *[]entity.Repair `json:"reparaciones"`
}

// IngresoResponse salida de un ingreso.
type IngresoResponse struct {
	ID                string          `json:"id"`
	FechaIngreso      time.Time       `json:"fecha_ingreso"`
	Empresa           string          `json:"empresa"`
	ConductorNombre   string          `json:"conductor_nombre"`
	ConductorTelefono string          `json:"conductor_telefono"`
	ConductorCedula   string          `json:"conductor_cedula,omitempty"`
	VehiculoPlaca     string          `json:"vehiculo_placa"`
	VehiculoTipo      string          `json:"vehiculo_tipo"`
	Reparaciones      []entity.Repair `json:"reparaciones"`
	Fotos             []string        `json:"fotos"`
	FirmaSupervisor   string          `json:"firma_supervisor"`
	FirmaConductor    string          `json:"firma_conductor"`
	Observaciones     string          `json:"observaciones"`
	Estado            string          `json:"estado"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateSalidaRequest campos de formulario de la salida.
type CreateSalidaRequest struct {
	IngresoID     string                   `json:"ingreso_id" form:"ingreso_id"`
	FechaSalida   *time.Time               `json:"fecha_salida" form:"fecha_salida"`
	Reparaciones  []entity.PerformedRepair `json:"reparaciones" form:"-"`
	Observaciones string                   `json:"observaciones" form:"observaciones"`
}

// SalidaResponse salida de una salida.
type SalidaResponse struct {
	ID            string                   `json:"id"`
	IngresoID     string                   `json:"ingreso_id"`
	FechaSalida   time.Time                `json:"fecha_salida"`
	Reparaciones  []entity.PerformedRepair `json:"reparaciones"`
	Fotos         []string                 `json:"fotos"`
	FirmaEntrega  string                   `json:"firma_entrega"`
	Estado        string                   `json:"estado"`
	Observaciones string                   `json:"observaciones"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}
