package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, nombre, descripcion, cantidad, precio_unitario, categoria, estado, ubicacion,
	asignaciones, ultimo_mantenimiento, proximo_mantenimiento, historial, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	if err := s.Scan(&p.ID, &p.SKU, &p.Nombre, &p.Descripcion, &p.Cantidad, &p.PrecioUnitario, &p.Categoria,
		&p.Estado, &p.Ubicacion, &p.Asignaciones, &p.UltimoMantenimiento, &p.ProximoMantenimiento,
		&p.Historial, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.Asignaciones == nil {
		p.Asignaciones = []entity.ProductAssignment{}
	}
	return &p, nil
}

// Create persiste un nuevo producto con su historial inicial. SKU duplicado → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	asignaciones := p.Asignaciones
	if asignaciones == nil {
		asignaciones = []entity.ProductAssignment{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, sku, nombre, descripcion, cantidad, precio_unitario, categoria, estado, ubicacion,
			asignaciones, ultimo_mantenimiento, proximo_mantenimiento, historial, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.SKU, p.Nombre, p.Descripcion, p.Cantidad, p.PrecioUnitario, p.Categoria, p.Estado, p.Ubicacion,
		asignaciones, p.UltimoMantenimiento, p.ProximoMantenimiento, p.Historial, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, where string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, arg))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `sku = $1`, sku)
}

// Update actualiza un producto existente. No modifica cantidad ni historial (se manejan con SetQuantity/AdjustQuantity).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET sku = $2, nombre = $3, descripcion = $4, precio_unitario = $5, categoria = $6,
			estado = $7, ubicacion = $8, ultimo_mantenimiento = $9, proximo_mantenimiento = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.SKU, p.Nombre, p.Descripcion, p.PrecioUnitario, p.Categoria,
		p.Estado, p.Ubicacion, p.UltimoMantenimiento, p.ProximoMantenimiento, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete product", `DELETE FROM products WHERE id = $1`, id)
}

// List lista productos con paginación, búsqueda por SKU/nombre y filtro de categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	const where = `WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		AND ($2 = '' OR categoria = $2)`
	total, err := count(ctx, r.q, `SELECT count(*) FROM products `+where, f.Search, f.Categoria)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products `+where+`
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`, f.Search, f.Categoria, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Count cantidad de productos y total de unidades.
func (r *ProductRepo) Count(ctx context.Context) (int, int64, error) {
	var n int
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*), COALESCE(sum(cantidad), 0) FROM products`).Scan(&n, &total); err != nil {
		return 0, 0, fmt.Errorf("count products: %w", err)
	}
	return n, total, nil
}

// SetQuantity fija la cantidad y anexa la entrada de historial en la misma sentencia.
func (r *ProductRepo) SetQuantity(ctx context.Context, id string, cantidad int, entry entity.HistoryEntry) (bool, error) {
	return execAffected(ctx, r.q, "set product quantity", `
		UPDATE products SET cantidad = $2, historial = historial || $3::jsonb, updated_at = now()
		WHERE id = $1 AND $2 >= 0`,
		id, cantidad, []entity.HistoryEntry{entry})
}

// AdjustQuantity suma delta de forma atómica. La condición cantidad + delta >= 0 evita
// que dos descuentos concurrentes dejen el inventario en negativo.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id string, delta int, precio *decimal.Decimal, entry entity.HistoryEntry) (bool, error) {
	return execAffected(ctx, r.q, "adjust product quantity", `
		UPDATE products SET cantidad = cantidad + $2,
			precio_unitario = COALESCE($3, precio_unitario),
			historial = historial || $4::jsonb, updated_at = now()
		WHERE id = $1 AND cantidad + $2 >= 0`,
		id, delta, precio, []entity.HistoryEntry{entry})
}

// AppendAssignment anexa una asignación (productos de categoría Herramienta).
func (r *ProductRepo) AppendAssignment(ctx context.Context, id string, a entity.ProductAssignment) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET asignaciones = asignaciones || $2::jsonb, updated_at = now() WHERE id = $1`,
		id, []entity.ProductAssignment{a})
	if err != nil {
		return fmt.Errorf("append product assignment: %w", err)
	}
	return nil
}
