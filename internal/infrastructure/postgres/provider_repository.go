package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

const providerColumns = `id, nombre, empresa, direccion, telefono, nit, metodo_pago, created_at, updated_at`

// ProviderRepo persistencia de proveedores.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

func scanProvider(s scanner) (*entity.Provider, error) {
	var p entity.Provider
	if err := s.Scan(&p.ID, &p.Nombre, &p.Empresa, &p.Direccion, &p.Telefono, &p.NIT, &p.MetodoPago,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO providers (id, nombre, empresa, direccion, telefono, nit, metodo_pago, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Nombre, p.Empresa, p.Direccion, p.Telefono, p.NIT, p.MetodoPago, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	p, err := scanProvider(r.q.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		UPDATE providers SET nombre = $2, empresa = $3, direccion = $4, telefono = $5, nit = $6,
			metodo_pago = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Nombre, p.Empresa, p.Direccion, p.Telefono, p.NIT, p.MetodoPago, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete provider", `DELETE FROM providers WHERE id = $1`, id)
}

// List lista proveedores por nombre, empresa o NIT.
func (r *ProviderRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Provider, int, error) {
	const where = `WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR empresa ILIKE '%' || $1 || '%' OR nit ILIKE '%' || $1 || '%')`
	total, err := count(ctx, r.q, `SELECT count(*) FROM providers `+where, p.Search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+providerColumns+` FROM providers `+where+`
		ORDER BY nombre LIMIT $2 OFFSET $3`, p.Search, limitArg(p.Limit), p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Provider{}
	for rows.Next() {
		pr, err := scanProvider(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, pr)
	}
	return list, total, rows.Err()
}
