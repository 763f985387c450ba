package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

const toolColumns = `id, sku, nombre, precio, categoria, proveedor, ubicacion, estado, assigned_to::text,
	historial, ultimo_mantenimiento, proximo_mantenimiento, activa, created_at, updated_at`

// ToolRepo persistencia de herramientas.
type ToolRepo struct {
	q Querier
}

// NewToolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewToolRepository(q Querier) *ToolRepo {
	return &ToolRepo{q: q}
}

func scanTool(s scanner) (*entity.Tool, error) {
	var t entity.Tool
	if err := s.Scan(&t.ID, &t.SKU, &t.Nombre, &t.Precio, &t.Categoria, &t.Proveedor, &t.Ubicacion, &t.Estado,
		&t.AssignedTo, &t.Historial, &t.UltimoMantenimiento, &t.ProximoMantenimiento, &t.Activa,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una herramienta nueva. SKU duplicado → domain.ErrDuplicate.
func (r *ToolRepo) Create(ctx context.Context, t *entity.Tool) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tools (id, sku, nombre, precio, categoria, proveedor, ubicacion, estado, assigned_to,
			historial, ultimo_mantenimiento, proximo_mantenimiento, activa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.SKU, t.Nombre, t.Precio, t.Categoria, t.Proveedor, t.Ubicacion, t.Estado, t.AssignedTo,
		t.Historial, t.UltimoMantenimiento, t.ProximoMantenimiento, t.Activa, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tool: %w", err)
	}
	return nil
}

// GetByID obtiene una herramienta (activa o no).
func (r *ToolRepo) GetByID(ctx context.Context, id string) (*entity.Tool, error) {
	t, err := scanTool(r.q.QueryRow(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return t, nil
}

// Update actualiza los datos descriptivos de una herramienta activa.
func (r *ToolRepo) Update(ctx context.Context, t *entity.Tool) error {
	_, err := r.q.Exec(ctx, `
		UPDATE tools SET sku = $2, nombre = $3, precio = $4, categoria = $5, proveedor = $6, ubicacion = $7,
			proximo_mantenimiento = $8, updated_at = $9
		WHERE id = $1 AND activa`,
		t.ID, t.SKU, t.Nombre, t.Precio, t.Categoria, t.Proveedor, t.Ubicacion, t.ProximoMantenimiento, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tool: %w", err)
	}
	return nil
}

// SoftDelete marca la herramienta como inactiva; el historial se conserva.
func (r *ToolRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "soft delete tool",
		`UPDATE tools SET activa = FALSE, updated_at = now() WHERE id = $1 AND activa`, id)
}

// List lista herramientas activas con filtros de estado y empleado asignado.
func (r *ToolRepo) List(ctx context.Context, f repository.ToolFilter) ([]*entity.Tool, int, error) {
	const where = `WHERE activa
		AND ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%' OR categoria ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR assigned_to::text = $3)`
	total, err := count(ctx, r.q, `SELECT count(*) FROM tools `+where, f.Search, f.Estado, f.AssignedTo)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+toolColumns+` FROM tools `+where+`
		ORDER BY nombre LIMIT $4 OFFSET $5`, f.Search, f.Estado, f.AssignedTo, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()
	list, err := collectTools(rows)
	return list, total, err
}

// ListAll todas las herramientas, incluidas las inactivas.
func (r *ToolRepo) ListAll(ctx context.Context) ([]*entity.Tool, error) {
	rows, err := r.q.Query(ctx, `SELECT `+toolColumns+` FROM tools ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list all tools: %w", err)
	}
	defer rows.Close()
	return collectTools(rows)
}

// ApplyTransition cambia estado, asignación y fechas de mantenimiento y anexa el evento
// en una sola sentencia. Con tr.From vacío no hay guarda de estado.
func (r *ToolRepo) ApplyTransition(ctx context.Context, id string, tr tooling.Transition) (bool, error) {
	return execAffected(ctx, r.q, "apply tool transition", `
		UPDATE tools SET estado = $3, assigned_to = $4,
			historial = historial || $5::jsonb,
			ultimo_mantenimiento = COALESCE($6, ultimo_mantenimiento),
			proximo_mantenimiento = COALESCE($7, proximo_mantenimiento),
			updated_at = $8
		WHERE id = $1 AND activa AND ($2 = '' OR estado = $2)`,
		id, tr.From, tr.To, tr.AssignedTo, []entity.ToolEvent{tr.Event},
		tr.UltimoMantenimiento, tr.ProximoMantenimiento, tr.Event.Fecha,
	)
}

type toolRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectTools(rows toolRows) ([]*entity.Tool, error) {
	list := []*entity.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
