package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// VehicleFilter filtros del listado de vehículos.
type VehicleFilter struct {
	ListParams
	Estado string
	Tipo   string
}

// VehicleRepository puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f VehicleFilter) ([]*entity.Vehicle, int, error)
	// AssignEmployee fija o limpia (nil) el empleado asignado.
	AssignEmployee(ctx context.Context, id string, employeeID *string) (bool, error)
	UpdateStatus(ctx context.Context, id, estado string) (bool, error)
	AppendProduct(ctx context.Context, id string, p entity.AssignedProduct) (bool, error)
}
