package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/quotation"
)

// QuotationFilter filtros del listado de cotizaciones. Limit 0 devuelve todas.
type QuotationFilter struct {
	ListParams
	Estado string
}

// QuotationRepository puerto de persistencia para Quotation.
type QuotationRepository interface {
	// NextFolioNumber incrementa atómicamente el contador de folios y devuelve el nuevo valor.
	NextFolioNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, q *entity.Quotation) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Quotation, error)
	// Update persiste datos generales, líneas y totales.
	Update(ctx context.Context, q *entity.Quotation) error
	UpdateStatus(ctx context.Context, id, estado string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f QuotationFilter) ([]*entity.Quotation, int, error)
	// SuggestionRefs busca en todas las cotizaciones las líneas cuyo placa, empresa o
	// proveedor contenga query, una por combinación y de la más reciente a la más antigua.
	SuggestionRefs(ctx context.Context, query string, limit int) ([]quotation.LineRef, error)
}
