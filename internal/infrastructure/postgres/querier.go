package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier superficie común de *pgxpool.Pool y pgx.Tx; los repos la reciben para
// poder trabajar igual con el pool o dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner lo implementan pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
