package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isInvalidText detecta uuids mal formados (22P02); los repos los tratan como "no existe".
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// notFound normaliza los errores de lectura de una fila: sin filas o id mal formado → (false, nil).
func notFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// execAffected ejecuta una sentencia y reporta si afectó alguna fila.
func execAffected(ctx context.Context, q Querier, what, sql string, args ...any) (bool, error) {
	cmd, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return cmd.RowsAffected() > 0, nil
}

// count ejecuta un SELECT count(*).
func count(ctx context.Context, q Querier, sql string, args ...any) (int, error) {
	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// limitArg convierte un límite 0 en NULL (sin límite).
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

// nullIfEmpty guarda cadenas vacías como NULL (columnas únicas opcionales).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
