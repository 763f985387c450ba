package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, placa, compania, tipo_vehiculo, estado, empleado_asignado::text, productos, created_at, updated_at`

// VehicleRepo persistencia de vehículos.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

func scanVehicle(s scanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := s.Scan(&v.ID, &v.Placa, &v.Compania, &v.TipoVehiculo, &v.Estado, &v.EmpleadoAsignado,
		&v.Productos, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if v.Productos == nil {
		v.Productos = []entity.AssignedProduct{}
	}
	return &v, nil
}

// Create persiste un vehículo. Placa duplicada → domain.ErrDuplicate.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	productos := v.Productos
	if productos == nil {
		productos = []entity.AssignedProduct{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO vehicles (id, placa, compania, tipo_vehiculo, estado, empleado_asignado, productos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.Placa, v.Compania, v.TipoVehiculo, v.Estado, v.EmpleadoAsignado, productos, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empleado asignado inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// Update actualiza placa, compañía, tipo y estado.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx, `
		UPDATE vehicles SET placa = $2, compania = $3, tipo_vehiculo = $4, estado = $5, updated_at = $6
		WHERE id = $1`,
		v.ID, v.Placa, v.Compania, v.TipoVehiculo, v.Estado, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete elimina el vehículo.
func (r *VehicleRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete vehicle", `DELETE FROM vehicles WHERE id = $1`, id)
}

// List lista vehículos por placa o compañía, con filtros de estado y tipo.
func (r *VehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, int, error) {
	const where = `WHERE ($1 = '' OR placa ILIKE '%' || $1 || '%' OR compania ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)
		AND ($3 = '' OR tipo_vehiculo = $3)`
	total, err := count(ctx, r.q, `SELECT count(*) FROM vehicles `+where, f.Search, f.Estado, f.Tipo)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles `+where+`
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`, f.Search, f.Estado, f.Tipo, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	list := []*entity.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// AssignEmployee fija o limpia el empleado asignado.
func (r *VehicleRepo) AssignEmployee(ctx context.Context, id string, employeeID *string) (bool, error) {
	ok, err := execAffected(ctx, r.q, "assign vehicle employee",
		`UPDATE vehicles SET empleado_asignado = $2, updated_at = now() WHERE id = $1`, id, employeeID)
	if err != nil && isForeignKeyViolation(err) {
		return false, fmt.Errorf("%w: empleado inexistente", domain.ErrInvalidInput)
	}
	return ok, err
}

// UpdateStatus cambia el estado del vehículo.
func (r *VehicleRepo) UpdateStatus(ctx context.Context, id, estado string) (bool, error) {
	return execAffected(ctx, r.q, "update vehicle status",
		`UPDATE vehicles SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
}

// AppendProduct anexa un producto asignado al vehículo.
func (r *VehicleRepo) AppendProduct(ctx context.Context, id string, p entity.AssignedProduct) (bool, error) {
	return execAffected(ctx, r.q, "append vehicle product",
		`UPDATE vehicles SET productos = productos || $2::jsonb, updated_at = now() WHERE id = $1`,
		id, []entity.AssignedProduct{p})
}
