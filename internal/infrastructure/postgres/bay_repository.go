package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.BayRepository = (*BayRepo)(nil)

// BayRepo persistencia de bahías.
type BayRepo struct {
	q Querier
}

// NewBayRepository construye el adaptador.
func NewBayRepository(q Querier) *BayRepo {
	return &BayRepo{q: q}
}

func scanBay(s scanner) (*entity.Bay, error) {
	var b entity.Bay
	if err := s.Scan(&b.ID, &b.Nombre, &b.Vehiculos, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if b.Vehiculos == nil {
		b.Vehiculos = []entity.BayVehicle{}
	}
	return &b, nil
}

func bayVehicles(b *entity.Bay) []entity.BayVehicle {
	if b.Vehiculos == nil {
		return []entity.BayVehicle{}
	}
	return b.Vehiculos
}

func (r *BayRepo) Create(ctx context.Context, b *entity.Bay) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO bays (id, nombre, vehiculos, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Nombre, bayVehicles(b), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bay: %w", err)
	}
	return nil
}

func (r *BayRepo) GetByID(ctx context.Context, id string) (*entity.Bay, error) {
	b, err := scanBay(r.q.QueryRow(ctx,
		`SELECT id, nombre, vehiculos, created_at, updated_at FROM bays WHERE id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bay: %w", err)
	}
	return b, nil
}

// Update reemplaza nombre y foto de ocupación.
func (r *BayRepo) Update(ctx context.Context, b *entity.Bay) error {
	_, err := r.q.Exec(ctx,
		`UPDATE bays SET nombre = $2, vehiculos = $3, updated_at = $4 WHERE id = $1`,
		b.ID, b.Nombre, bayVehicles(b), b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bay: %w", err)
	}
	return nil
}

func (r *BayRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete bay", `DELETE FROM bays WHERE id = $1`, id)
}

func (r *BayRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Bay, int, error) {
	const where = `WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%')`
	total, err := count(ctx, r.q, `SELECT count(*) FROM bays `+where, p.Search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, nombre, vehiculos, created_at, updated_at FROM bays `+where+`
		ORDER BY nombre LIMIT $2 OFFSET $3`, p.Search, limitArg(p.Limit), p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bays: %w", err)
	}
	defer rows.Close()
	list := []*entity.Bay{}
	for rows.Next() {
		b, err := scanBay(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan bay: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}
