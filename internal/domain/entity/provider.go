package entity

import "time"

// PaymentMethod datos bancarios del proveedor.
type PaymentMethod struct {
	NumeroCuenta string `json:"numero_cuenta"`
	Banco        string `json:"banco"`
}

// Provider proveedor de repuestos o servicios.
type Provider struct {
	ID         string
	Nombre     string
	Empresa    string
	Direccion  string
	Telefono   string
	NIT        string
	MetodoPago PaymentMethod
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
