package quotations

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PDFGenerator genera la representación imprimible de una cotización.
type PDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation) ([]byte, error)
}

// Exporter genera el libro xlsx con un listado de cotizaciones.
type Exporter interface {
	ExportQuotations(ctx context.Context, qs []*entity.Quotation) ([]byte, error)
}
