package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/quotation"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/textnorm"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `id, folio, cliente, empresa, placa, fecha, estado, productos, subtotal, iva, total, created_at, updated_at`

// QuotationRepo persistencia de cotizaciones.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

func scanQuotation(s scanner) (*entity.Quotation, error) {
	var qt entity.Quotation
	if err := s.Scan(&qt.ID, &qt.Folio, &qt.Cliente, &qt.Empresa, &qt.Placa, &qt.Fecha, &qt.Estado,
		&qt.Productos, &qt.Subtotal, &qt.IVA, &qt.Total, &qt.CreatedAt, &qt.UpdatedAt); err != nil {
		return nil, err
	}
	if qt.Productos == nil {
		qt.Productos = []entity.QuotationLine{}
	}
	return &qt, nil
}

// NextFolioNumber incrementa el contador "quotation" en una sola sentencia. El primer valor
// continúa desde el mayor folio existente para no repetir folios de datos importados.
func (r *QuotationRepo) NextFolioNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO folio_counters (name, value)
		VALUES ('quotation', COALESCE((
			SELECT max(substring(folio FROM '^COT-([0-9]+)$')::bigint) FROM quotations
		), 0) + 1)
		ON CONFLICT (name) DO UPDATE SET value = folio_counters.value + 1
		RETURNING value`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next folio: %w", err)
	}
	return n, nil
}

func (r *QuotationRepo) Create(ctx context.Context, qt *entity.Quotation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotations (id, folio, cliente, empresa, placa, fecha, estado, productos, subtotal, iva, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		qt.ID, qt.Folio, qt.Cliente, qt.Empresa, qt.Placa, qt.Fecha, qt.Estado, qt.Productos,
		qt.Subtotal, qt.IVA, qt.Total, qt.CreatedAt, qt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

func (r *QuotationRepo) getOne(ctx context.Context, sql, id string) (*entity.Quotation, error) {
	qt, err := scanQuotation(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return qt, nil
}

func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
}

// GetForUpdate lee la cotización con SELECT ... FOR UPDATE (usar dentro de una tx).
func (r *QuotationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error) {
	return r.getOne(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1 FOR UPDATE`, id)
}

func (r *QuotationRepo) Update(ctx context.Context, qt *entity.Quotation) error {
	_, err := r.q.Exec(ctx, `
		UPDATE quotations SET cliente = $2, empresa = $3, placa = $4, fecha = $5, estado = $6, productos = $7,
			subtotal = $8, iva = $9, total = $10, updated_at = $11
		WHERE id = $1`,
		qt.ID, qt.Cliente, qt.Empresa, qt.Placa, qt.Fecha, qt.Estado, qt.Productos,
		qt.Subtotal, qt.IVA, qt.Total, qt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

func (r *QuotationRepo) UpdateStatus(ctx context.Context, id, estado string) (bool, error) {
	return execAffected(ctx, r.q, "update quotation status",
		`UPDATE quotations SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
}

func (r *QuotationRepo) Delete(ctx context.Context, id string) (bool, error) {
	return execAffected(ctx, r.q, "delete quotation", `DELETE FROM quotations WHERE id = $1`, id)
}

func (r *QuotationRepo) List(ctx context.Context, f repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	const where = `WHERE ($1 = '' OR folio ILIKE '%' || $1 || '%' OR placa ILIKE '%' || $1 || '%'
			OR empresa ILIKE '%' || $1 || '%' OR cliente ILIKE '%' || $1 || '%')
		AND ($2 = '' OR estado = $2)`
	total, err := count(ctx, r.q, `SELECT count(*) FROM quotations `+where, f.Search, f.Estado)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+quotationColumns+` FROM quotations `+where+`
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`, f.Search, f.Estado, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	list := []*entity.Quotation{}
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, qt)
	}
	return list, total, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// foldSQL minúsculas sin tildes, equivalente en SQL de textnorm.Fold para el español.
const foldSQL = `translate(lower(%s), 'áàäâéèëêíìïîóòöôúùüûñ', 'aaaaeeeeiiiioooouuuun')`

// SuggestionRefs filtra en SQL sobre todas las cotizaciones y deja una línea por
// combinación (placa, empresa, proveedor), la más reciente.
func (r *QuotationRepo) SuggestionRefs(ctx context.Context, query string, limit int) ([]quotation.LineRef, error) {
	pattern := "%" + likeEscaper.Replace(textnorm.Fold(query)) + "%"
	placa := fmt.Sprintf(foldSQL, "q.placa")
	empresa := fmt.Sprintf(foldSQL, "q.empresa")
	proveedor := fmt.Sprintf(foldSQL, "coalesce(l.line->>'proveedor', '')")
	rows, err := r.q.Query(ctx, `
		SELECT placa, empresa, line FROM (
			SELECT DISTINCT ON (`+placa+`, `+empresa+`, `+proveedor+`)
				q.placa, q.empresa, l.line, q.created_at
			FROM quotations q
			CROSS JOIN LATERAL jsonb_array_elements(q.productos) AS l(line)
			WHERE `+placa+` LIKE $1 OR `+empresa+` LIKE $1 OR `+proveedor+` LIKE $1
			ORDER BY `+placa+`, `+empresa+`, `+proveedor+`, q.created_at DESC
		) s
		ORDER BY created_at DESC
		LIMIT $2`, pattern, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("quotation suggestion refs: %w", err)
	}
	defer rows.Close()
	refs := []quotation.LineRef{}
	for rows.Next() {
		var ref quotation.LineRef
		if err := rows.Scan(&ref.Placa, &ref.Empresa, &ref.Line); err != nil {
			return nil, fmt.Errorf("scan quotation suggestion refs: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
