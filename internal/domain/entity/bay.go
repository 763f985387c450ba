package entity

import "time"

// BayProduct producto dentro de la foto de ocupación de una bahía.
type BayProduct struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

// BayVehicle vehículo ubicado en la bahía (copia desnormalizada, no autoritativa).
type BayVehicle struct {
	Placa        string       `json:"placa"`
	TipoVehiculo string       `json:"tipo_vehiculo,omitempty"`
	Productos    []BayProduct `json:"productos"`
}

// Bay bahía física de trabajo.
type Bay struct {
	ID        string
	Nombre    string
	Vehiculos []BayVehicle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ocupada indica si la bahía tiene al menos un vehículo.
func (b *Bay) Ocupada() bool { return len(b.Vehiculos) > 0 }
