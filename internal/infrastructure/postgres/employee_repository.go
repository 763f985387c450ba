package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, nombre, COALESCE(email, ''), telefono, cargo, fecha_nacimiento, activo, entregas, created_at, updated_at`

// EmployeeRepo persistencia de empleados.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(s scanner) (*entity.Employee, error) {
	var e entity.Employee
	if err := s.Scan(&e.ID, &e.Nombre, &e.Email, &e.Telefono, &e.Cargo, &e.FechaNacimiento,
		&e.Activo, &e.Entregas, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if e.Entregas == nil {
		e.Entregas = []entity.Delivery{}
	}
	return &e, nil
}

// Create persiste un empleado. Email duplicado → domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (id, nombre, email, telefono, cargo, fecha_nacimiento, activo, entregas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.Nombre, nullIfEmpty(e.Email), e.Telefono, e.Cargo, e.FechaNacimiento, e.Activo,
		deliveriesOrEmpty(e.Entregas), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Update actualiza los datos del empleado (las entregas solo se anexan).
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		UPDATE employees SET nombre = $2, email = $3, telefono = $4, cargo = $5, fecha_nacimiento = $6,
			activo = $7, updated_at = $8
		WHERE id = $1`,
		e.ID, e.Nombre, nullIfEmpty(e.Email), e.Telefono, e.Cargo, e.FechaNacimiento, e.Activo, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina el empleado.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete employee", `DELETE FROM employees WHERE id = $1`, id)
}

// List lista empleados por nombre, email o cargo.
func (r *EmployeeRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Employee, int, error) {
	const where = `WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR cargo ILIKE '%' || $1 || '%')`
	total, err := count(ctx, r.q, `SELECT count(*) FROM employees `+where, p.Search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees `+where+`
		ORDER BY nombre LIMIT $2 OFFSET $3`, p.Search, limitArg(p.Limit), p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	list := []*entity.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// AppendDelivery anexa una entrega a la lista del empleado.
func (r *EmployeeRepo) AppendDelivery(ctx context.Context, id string, d entity.Delivery) (bool, error) {
	return execAffected(ctx, r.q, "append delivery",
		`UPDATE employees SET entregas = entregas || $2::jsonb, updated_at = now() WHERE id = $1`,
		id, []entity.Delivery{d})
}

// HasAssignments indica si alguna herramienta activa en uso o algún vehículo referencia al empleado.
func (r *EmployeeRepo) HasAssignments(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tools WHERE assigned_to = $1 AND activa)
		    OR EXISTS (SELECT 1 FROM vehicles WHERE empleado_asignado = $1)`, id).Scan(&exists)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("employee assignments: %w", err)
	}
	return exists, nil
}

func deliveriesOrEmpty(d []entity.Delivery) []entity.Delivery {
	if d == nil {
		return []entity.Delivery{}
	}
	return d
}
