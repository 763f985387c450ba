package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
)

// ToolFilter filtros del listado de herramientas. Las inactivas nunca se listan.
type ToolFilter struct {
	ListParams
	Estado     string
	AssignedTo string
}

// ToolRepository puerto de persistencia para Tool.
type ToolRepository interface {
	Create(ctx context.Context, t *entity.Tool) error
	GetByID(ctx context.Context, id string) (*entity.Tool, error)
	// Update actualiza los campos descriptivos; nunca estado, asignación ni historial.
	Update(ctx context.Context, t *entity.Tool) error
	SoftDelete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f ToolFilter) ([]*entity.Tool, int, error)
	// ListAll incluye inactivas; fuente de estadísticas y exportación.
	ListAll(ctx context.Context) ([]*entity.Tool, error)
	// ApplyTransition ejecuta tr en una sola sentencia condicionada a tr.From.
	// Devuelve false si la herramienta no existe o su estado ya no es tr.From.
	ApplyTransition(ctx context.Context, id string, tr tooling.Transition) (bool, error)
}
