package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var (
	_ repository.IngresoRepository = (*IngresoRepo)(nil)
	_ repository.SalidaRepository  = (*SalidaRepo)(nil)
)

const ingresoColumns = `id, fecha_ingreso, empresa, conductor_nombre, conductor_telefono, conductor_cedula,
	vehiculo_placa, vehiculo_tipo, reparaciones, fotos, firma_supervisor, firma_conductor, observaciones,
	estado, created_at, updated_at`

// IngresoRepo persistencia de ingresos de vehículos.
type IngresoRepo struct {
	q Querier
}

// NewIngresoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngresoRepository(q Querier) *IngresoRepo {
	return &IngresoRepo{q: q}
}

func scanIngreso(s scanner) (*entity.Ingreso, error) {
	var in entity.Ingreso
	if err := s.Scan(&in.ID, &in.FechaIngreso, &in.Empresa, &in.ConductorNombre, &in.ConductorTelefono,
		&in.ConductorCedula, &in.VehiculoPlaca, &in.VehiculoTipo, &in.Reparaciones, &in.Fotos,
		&in.FirmaSupervisor, &in.FirmaConductor, &in.Observaciones, &in.Estado, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return nil, err
	}
	if in.Reparaciones == nil {
		in.Reparaciones = []entity.Repair{}
	}
	if in.Fotos == nil {
		in.Fotos = []string{}
	}
	return &in, nil
}

func (r *IngresoRepo) Create(ctx context.Context, in *entity.Ingreso) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ingresos (id, fecha_ingreso, empresa, conductor_nombre, conductor_telefono, conductor_cedula,
			vehiculo_placa, vehiculo_tipo, reparaciones, fotos, firma_supervisor, firma_conductor, observaciones,
			estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		in.ID, in.FechaIngreso, in.Empresa, in.ConductorNombre, in.ConductorTelefono, in.ConductorCedula,
		in.VehiculoPlaca, in.VehiculoTipo, repairsOrEmpty(in.Reparaciones), stringsOrEmpty(in.Fotos),
		in.FirmaSupervisor, in.FirmaConductor, in.Observaciones, in.Estado, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingreso: %w", err)
	}
	return nil
}

func (r *IngresoRepo) getOne(ctx context.Context, sql, id string) (*entity.Ingreso, error) {
	in, err := scanIngreso(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingreso: %w", err)
	}
	return in, nil
}

func (r *IngresoRepo) GetByID(ctx context.Context, id string) (*entity.Ingreso, error) {
	return r.getOne(ctx, `SELECT `+ingresoColumns+` FROM ingresos WHERE id = $1`, id)
}

// GetForUpdate lee el ingreso con SELECT ... FOR UPDATE (usar dentro de una tx).
func (r *IngresoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Ingreso, error) {
	return r.getOne(ctx, `SELECT `+ingresoColumns+` FROM ingresos WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado, observaciones y reparaciones.
func (r *IngresoRepo) Update(ctx context.Context, in *entity.Ingreso) error {
	_, err := r.q.Exec(ctx, `
		UPDATE ingresos SET estado = $2, observaciones = $3, reparaciones = $4, updated_at = $5
		WHERE id = $1`,
		in.ID, in.Estado, in.Observaciones, repairsOrEmpty(in.Reparaciones), in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update ingreso: %w", err)
	}
	return nil
}

func (r *IngresoRepo) SetEstado(ctx context.Context, id, estado string) error {
	if _, err := r.q.Exec(ctx, `UPDATE ingresos SET estado = $2, updated_at = now() WHERE id = $1`, id, estado); err != nil {
		return fmt.Errorf("set ingreso estado: %w", err)
	}
	return nil
}

// Delete elimina el ingreso. La FK de salidas (ON DELETE RESTRICT) respalda la regla
// de no borrar un ingreso con salida.
func (r *IngresoRepo) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := execAffected(ctx, r.q, "delete ingreso", `DELETE FROM ingresos WHERE id = $1`, id)
	if err != nil && isForeignKeyViolation(err) {
		return false, domain.ErrIngresoHasSalida
	}
	return ok, err
}

func (r *IngresoRepo) List(ctx context.Context, f repository.IngresoFilter) ([]*entity.Ingreso, int, error) {
	const where = `WHERE ($1 = '' OR vehiculo_placa ILIKE '%' || $1 || '%' OR empresa ILIKE '%' || $1 || '%' OR conductor_nombre ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)`
	total, err := count(ctx, r.q, `SELECT count(*) FROM ingresos `+where, f.Search, f.Estado)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+ingresoColumns+` FROM ingresos `+where+`
		ORDER BY fecha_ingreso DESC LIMIT $3 OFFSET $4`, f.Search, f.Estado, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ingresos: %w", err)
	}
	defer rows.Close()
	list := []*entity.Ingreso{}
	for rows.Next() {
		in, err := scanIngreso(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ingreso: %w", err)
		}
		list = append(list, in)
	}
	return list, total, rows.Err()
}

const salidaColumns = `id, ingreso_id, fecha_salida, reparaciones, fotos, firma_entrega, estado, observaciones, created_at, updated_at`

// SalidaRepo persistencia de salidas.
type SalidaRepo struct {
	q Querier
}

// NewSalidaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalidaRepository(q Querier) *SalidaRepo {
	return &SalidaRepo{q: q}
}

func scanSalida(s scanner) (*entity.Salida, error) {
	var sa entity.Salida
	if err := s.Scan(&sa.ID, &sa.IngresoID, &sa.FechaSalida, &sa.Reparaciones, &sa.Fotos, &sa.FirmaEntrega,
		&sa.Estado, &sa.Observaciones, &sa.CreatedAt, &sa.UpdatedAt); err != nil {
		return nil, err
	}
	if sa.Reparaciones == nil {
		sa.Reparaciones = []entity.PerformedRepair{}
	}
	if sa.Fotos == nil {
		sa.Fotos = []string{}
	}
	return &sa, nil
}

// Create persiste la salida. Un segundo registro para el mismo ingreso viola la
// restricción única y se devuelve domain.ErrDuplicate.
func (r *SalidaRepo) Create(ctx context.Context, s *entity.Salida) error {
	reps := s.Reparaciones
	if reps == nil {
		reps = []entity.PerformedRepair{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO salidas (id, ingreso_id, fecha_salida, reparaciones, fotos, firma_entrega, estado, observaciones, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.IngresoID, s.FechaSalida, reps, stringsOrEmpty(s.Fotos), s.FirmaEntrega, s.Estado,
		s.Observaciones, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ingreso inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert salida: %w", err)
	}
	return nil
}

func (r *SalidaRepo) getOne(ctx context.Context, where, arg string) (*entity.Salida, error) {
	s, err := scanSalida(r.q.QueryRow(ctx, `SELECT `+salidaColumns+` FROM salidas WHERE `+where, arg))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salida: %w", err)
	}
	return s, nil
}

func (r *SalidaRepo) GetByID(ctx context.Context, id string) (*entity.Salida, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *SalidaRepo) GetByIngresoID(ctx context.Context, ingresoID string) (*entity.Salida, error) {
	return r.getOne(ctx, `ingreso_id = $1`, ingresoID)
}

func (r *SalidaRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Salida, int, error) {
	total, err := count(ctx, r.q, `SELECT count(*) FROM salidas`)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+salidaColumns+` FROM salidas
		ORDER BY fecha_salida DESC LIMIT $1 OFFSET $2`, limitArg(p.Limit), p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list salidas: %w", err)
	}
	defer rows.Close()
	list := []*entity.Salida{}
	for rows.Next() {
		s, err := scanSalida(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan salida: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func repairsOrEmpty(r []entity.Repair) []entity.Repair {
	if r == nil {
		return []entity.Repair{}
	}
	return r
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
