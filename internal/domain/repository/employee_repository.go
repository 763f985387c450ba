package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, p ListParams) ([]*entity.Employee, int, error)
	// AppendDelivery anexa una entrega a la lista del empleado.
	AppendDelivery(ctx context.Context, id string, d entity.Delivery) (bool, error)
	// HasAssignments indica si el empleado tiene herramientas activas en uso o vehículos asignados.
	HasAssignments(ctx context.Context, id string) (bool, error)
}
