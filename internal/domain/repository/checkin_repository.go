package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// IngresoFilter filtros del listado de ingresos.
type IngresoFilter struct {
	ListParams
	Estado string
}

// IngresoRepository puerto de persistencia para Ingreso.
type IngresoRepository interface {
	Create(ctx context.Context, in *entity.Ingreso) error
	GetByID(ctx context.Context, id string) (*entity.Ingreso, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Ingreso, error)
	Update(ctx context.Context, in *entity.Ingreso) error
	SetEstado(ctx context.Context, id, estado string) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f IngresoFilter) ([]*entity.Ingreso, int, error)
}

// SalidaRepository puerto de persistencia para Salida.
type SalidaRepository interface {
	// Create devuelve domain.ErrDuplicate si el ingreso ya tiene salida.
	Create(ctx context.Context, s *entity.Salida) error
	GetByID(ctx context.Context, id string) (*entity.Salida, error)
	GetByIngresoID(ctx context.Context, ingresoID string) (*entity.Salida, error)
	List(ctx context.Context, p ListParams) ([]*entity.Salida, int, error)
}
