package entity

import "time"

// Estados de una salida.
const (
	SalidaCompletado = "completado"
	SalidaParcial    = "parcial"
	SalidaPendiente  = "pendiente"
)

// PerformedRepair reparación reportada al entregar el vehículo.
type PerformedRepair struct {
	Descripcion   string `json:"descripcion"`
	Realizada     bool   `json:"realizada"`
	Observaciones string `json:"observaciones,omitempty"`
}

// Salida registro de entrega del vehículo; referencia exactamente un Ingreso.
type Salida struct {
	ID            string
	IngresoID     string
	FechaSalida   time.Time
	Reparaciones  []PerformedRepair
	Fotos         []string
	FirmaEntrega  string
	Estado        string
	Observaciones string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalidaEstadoFor deriva el estado a partir de las reparaciones realizadas:
// todas → completado, algunas → parcial, ninguna (o lista vacía) → pendiente.
func SalidaEstadoFor(reps []PerformedRepair) string {
	done := 0
	for _, r := range reps {
		if r.Realizada {
			done++
		}
	}
	switch {
	case done == 0:
		return SalidaPendiente
	case done == len(reps):
		return SalidaCompletado
	default:
		return SalidaParcial
	}
}
