package repository

import "context"

// Repos conjunto de repositorios atados a una misma transacción.
type Repos struct {
	Products   ProductRepository
	Employees  EmployeeRepository
	Tools      ToolRepository
	Vehicles   VehicleRepository
	Ingresos   IngresoRepository
	Salidas    SalidaRepository
	Quotations QuotationRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
