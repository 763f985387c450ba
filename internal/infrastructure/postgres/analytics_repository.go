package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// DashboardCounts reúne los conteos escalares en una consulta y los agrupados por estado en otra.
// No se ejecuta en transacción: el tablero tolera lecturas levemente desfasadas.
func (r *AnalyticsRepo) DashboardCounts(ctx context.Context, lowStockThreshold int) (*repository.DashboardCounts, error) {
	const scalars = `
	SELECT
	    (SELECT count(*) FROM employees)                                       AS employees,
	    (SELECT count(*) FROM employees WHERE activo)                          AS active_employees,
	    (SELECT count(*) FROM products)                                        AS products,
	    (SELECT COALESCE(sum(cantidad), 0) FROM products)                      AS total_cantidad,
	    (SELECT count(*) FROM products WHERE cantidad <= $1)                   AS low_stock,
	    (SELECT count(*) FROM bays)                                            AS bays,
	    (SELECT count(*) FROM bays WHERE jsonb_array_length(vehiculos) > 0)    AS occupied_bays`

	out := &repository.DashboardCounts{}
	err := r.pool.QueryRow(ctx, scalars, lowStockThreshold).Scan(
		&out.Employees, &out.ActiveEmployees, &out.Products, &out.TotalCantidad,
		&out.LowStockProducts, &out.Bays, &out.OccupiedBays,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard scalars: %w", err)
	}

	const grouped = `
	SELECT 'vehicles', estado, count(*) FROM vehicles GROUP BY estado
	UNION ALL
	SELECT 'tools', estado, count(*) FROM tools WHERE activa GROUP BY estado
	UNION ALL
	SELECT 'quotations', estado, count(*) FROM quotations GROUP BY estado
	UNION ALL
	SELECT 'ingresos', estado, count(*) FROM ingresos GROUP BY estado`

	rows, err := r.pool.Query(ctx, grouped)
	if err != nil {
		return nil, fmt.Errorf("dashboard grouped: %w", err)
	}
	defer rows.Close()

	out.VehiclesByEstado = map[string]int{}
	out.ToolsByEstado = map[string]int{}
	out.QuotationsByEstado = map[string]int{}
	out.IngresosByEstado = map[string]int{}
	target := map[string]map[string]int{
		"vehicles":   out.VehiclesByEstado,
		"tools":      out.ToolsByEstado,
		"quotations": out.QuotationsByEstado,
		"ingresos":   out.IngresosByEstado,
	}
	for rows.Next() {
		var kind, estado string
		var n int
		if err := rows.Scan(&kind, &estado, &n); err != nil {
			return nil, fmt.Errorf("scan dashboard group: %w", err)
		}
		target[kind][estado] = n
	}
	return out, rows.Err()
}
