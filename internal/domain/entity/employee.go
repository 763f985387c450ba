package entity

import "time"

// Delivery registro de un producto entregado a un empleado.
type Delivery struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Cantidad    int       `json:"cantidad"`
	Fecha       time.Time `json:"fecha"`
}

// Employee representa un empleado del taller (no necesariamente usuario del sistema).
type Employee struct {
	ID              string
	Nombre          string
	Email           string // opcional; único si está presente
	Telefono        string
	Cargo           string
	FechaNacimiento *time.Time
	Activo          bool
	Entregas        []Delivery
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
