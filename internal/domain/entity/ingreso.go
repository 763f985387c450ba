package entity

import "time"

// Estados de un ingreso de vehículo.
const (
	IngresoIngresado    = "ingresado"
	IngresoEnRevision   = "en_revision"
	IngresoEnReparacion = "en_reparacion"
	IngresoCompletado   = "completado"
)

// ValidEstadoIngreso indica si e es un estado de ingreso conocido.
func ValidEstadoIngreso(e string) bool {
	switch e {
	case IngresoIngresado, IngresoEnRevision, IngresoEnReparacion, IngresoCompletado:
		return true
	}
	return false
}

// Repair reparación solicitada al ingresar el vehículo.
type Repair struct {
	Descripcion string `json:"descripcion"`
	Prioridad   string `json:"prioridad"` // baja, media, alta
	Aprobada    bool   `json:"aprobada"`
}

// Ingreso registro de entrada de un vehículo al taller, con evidencia fotográfica y firmas.
type Ingreso struct {
	ID                string
	FechaIngreso      time.Time
	Empresa           string
	ConductorNombre   string
	ConductorTelefono string
	ConductorCedula   string
	VehiculoPlaca     string
	VehiculoTipo      string
	Reparaciones      []Repair
	Fotos             []string
	FirmaSupervisor   string
	FirmaConductor    string
	Observaciones     string
	Estado            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
