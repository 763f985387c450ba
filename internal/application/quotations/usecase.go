// Package quotations orquesta las cotizaciones: folio atómico, edición bajo bloqueo
// de fila y recálculo de totales en el servidor en cada cambio.
package quotations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/quotation"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

const suggestionLimit = 20

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	repo     repository.QuotationRepository
	txRunner repository.TxRunner
	pdf      PDFGenerator
	exporter Exporter
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. pdf y exporter pueden ser nil.
func NewUseCase(repo repository.QuotationRepository, txRunner repository.TxRunner, pdf PDFGenerator, exporter Exporter, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, txRunner: txRunner, pdf: pdf, exporter: exporter, log: log, now: time.Now}
}

func toLines(in []dto.QuotationLineInput, keepIDs bool) []entity.QuotationLine {
	out := make([]entity.QuotationLine, 0, len(in))
	for _, l := range in {
		line := entity.QuotationLine{
			Nombre:         strings.TrimSpace(l.Nombre),
			Categoria:      l.Categoria,
			Unidad:         l.Unidad,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Proveedor:      strings.TrimSpace(l.Proveedor),
			Estado:         l.Estado,
			Aprobado:       l.Aprobado,
			Eliminado:      l.Eliminado,
		}
		if keepIDs {
			line.LineID = l.LineID
		}
		out = append(out, line)
	}
	return out
}

func prepareLines(lines []entity.QuotationLine) error {
	if err := quotation.ValidateLines(lines); err != nil {
		return err
	}
	return quotation.AssignLineIDs(lines)
}

// Create crea la cotización con el siguiente folio del contador y totales calculados.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	ve := &domain.ValidationError{}
	placa := entity.NormalizePlaca(in.Placa)
	if placa == "" {
		ve.Add("placa", "es requerida")
	}
	empresa := strings.TrimSpace(in.Empresa)
	if empresa == "" {
		ve.Add("empresa", "es requerida")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	lines := toLines(in.Productos, false)
	if err := prepareLines(lines); err != nil {
		return nil, err
	}

	now := uc.now()
	fecha := now
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	q := &entity.Quotation{
		ID:        uuid.New().String(),
		Cliente:   strings.TrimSpace(in.Cliente),
		Empresa:   empresa,
		Placa:     placa,
		Fecha:     fecha,
		Estado:    entity.CotizacionPendiente,
		Productos: lines,
		CreatedAt: now,
		UpdatedAt: now,
	}
	quotation.Recalculate(q)

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		n, err := r.Quotations.NextFolioNumber(ctx)
		if err != nil {
			return fmt.Errorf("quotations: siguiente folio: %w", err)
		}
		q.Folio = quotation.FormatFolio(n)
		return r.Quotations.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, uc.log).Info().Str("folio", q.Folio).Str("placa", q.Placa).Str("total", q.Total.StringFixed(2)).Msg("cotización creada")
	return toResponse(q), nil
}

// GetByID obtiene una cotización.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(q), nil
}

// List lista cotizaciones del folio más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context, p dto.PageRequest, estado string) (*dto.ListResponse[dto.QuotationResponse], error) {
	if estado != "" && !entity.ValidEstadoCotizacion(estado) {
		return nil, domain.NewValidationError("estado", "debe ser pendiente, en_revision, aprobada o rechazada")
	}
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.QuotationFilter{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search},
		Estado:     estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toResponse(q))
	}
	return &dto.ListResponse[dto.QuotationResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// Update edita datos generales y, si llegan, reemplaza las líneas. Las líneas con
// line_id conservan su identificador; las nuevas reciben el siguiente libre.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateQuotationRequest) (*dto.QuotationResponse, error) {
	var out *entity.Quotation
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		q, err := r.Quotations.GetForUpdate(ctx, id)
		if err != nil || q == nil {
			return err
		}
		if in.Placa != nil {
			q.Placa = entity.NormalizePlaca(*in.Placa)
		}
		if in.Empresa != nil {
			q.Empresa = strings.TrimSpace(*in.Empresa)
		}
		if in.Cliente != nil {
			q.Cliente = strings.TrimSpace(*in.Cliente)
		}
		if in.Fecha != nil {
			q.Fecha = *in.Fecha
		}
		if in.Estado != nil {
			if !entity.ValidEstadoCotizacion(*in.Estado) {
				return domain.NewValidationError("estado", "valor inválido")
			}
			q.Estado = *in.Estado
		}
		if in.Productos != nil {
			lines := toLines(*in.Productos, true)
			if err := prepareLines(lines); err != nil {
				return err
			}
			q.Productos = lines
		}
		quotation.Recalculate(q)
		q.UpdatedAt = uc.now()
		if err := r.Quotations.Update(ctx, q); err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// UpdateStatus sobrescribe el estado; cualquier estado es alcanzable desde cualquier otro.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	if !entity.ValidEstadoCotizacion(in.Estado) {
		return nil, domain.NewValidationError("estado", "debe ser pendiente, en_revision, aprobada o rechazada")
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, in.Estado)
	if err != nil || !ok {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func toPatches(in []dto.LinePatchRequest) []quotation.LinePatch {
	out := make([]quotation.LinePatch, 0, len(in))
	for _, p := range in {
		out = append(out, quotation.LinePatch{LineID: p.LineID, Index: p.Index, Estado: p.Estado, Aprobado: p.Aprobado, Eliminado: p.Eliminado})
	}
	return out
}

// UpdateProducts aplica cambios de estado a líneas de una cotización y recalcula totales.
func (uc *UseCase) UpdateProducts(ctx context.Context, id string, in dto.UpdateQuotationProductsRequest) (*dto.QuotationResponse, error) {
	var out *entity.Quotation
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		q, err := r.Quotations.GetForUpdate(ctx, id)
		if err != nil || q == nil {
			return err
		}
		if err := quotation.ApplyPatches(q, toPatches(in.Productos)); err != nil {
			return err
		}
		q.UpdatedAt = uc.now()
		if err := r.Quotations.Update(ctx, q); err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// BatchUpdateProducts aplica cambios de líneas sobre varias cotizaciones. Todos los
// cambios se validan antes de la primera escritura: o se aplican todos o ninguno.
func (uc *UseCase) BatchUpdateProducts(ctx context.Context, in dto.BatchUpdateProductsRequest) ([]dto.QuotationResponse, error) {
	order := []string{}
	byQuotation := map[string][]dto.LinePatchRequest{}
	for _, u := range in.Updates {
		if _, ok := byQuotation[u.QuotationID]; !ok {
			order = append(order, u.QuotationID)
		}
		byQuotation[u.QuotationID] = append(byQuotation[u.QuotationID], u.LinePatchRequest)
	}

	updated := make([]*entity.Quotation, 0, len(order))
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		now := uc.now()
		for _, id := range order {
			q, err := r.Quotations.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("%w: cotización %s", domain.ErrNotFound, id)
			}
			if err := quotation.ApplyPatches(q, toPatches(byQuotation[id])); err != nil {
				return fmt.Errorf("cotización %s: %w", q.Folio, err)
			}
			q.UpdatedAt = now
			updated = append(updated, q)
		}
		for _, q := range updated {
			if err := r.Quotations.Update(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(updated))
	for _, q := range updated {
		out = append(out, *toResponse(q))
	}
	return out, nil
}

// Delete elimina una cotización. El folio no se reutiliza.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Suggestions autocompletado por placa, empresa o proveedor sobre todas las cotizaciones.
func (uc *UseCase) Suggestions(ctx context.Context, query string) ([]quotation.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []quotation.Suggestion{}, nil
	}
	refs, err := uc.repo.SuggestionRefs(ctx, query, suggestionLimit)
	if err != nil {
		return nil, err
	}
	return quotation.Suggest(refs, query, suggestionLimit), nil
}

// PDF genera el documento de la cotización. Devuelve ErrNotFound si no existe.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("quotations: generador PDF no configurado")
	}
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.pdf.GenerateQuotationPDF(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("quotations: generar pdf %s: %w", q.Folio, err)
	}
	return data, q.Folio + ".pdf", nil
}

// Export libro xlsx con todas las cotizaciones, opcionalmente filtradas por estado.
func (uc *UseCase) Export(ctx context.Context, estado string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("quotations: exportador no configurado")
	}
	if estado != "" && !entity.ValidEstadoCotizacion(estado) {
		return nil, "", domain.NewValidationError("estado", "valor inválido")
	}
	list, _, err := uc.repo.List(ctx, repository.QuotationFilter{Estado: estado})
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportQuotations(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("quotations: exportar: %w", err)
	}
	return data, fmt.Sprintf("cotizaciones-%s.xlsx", uc.now().Format("20060102")), nil
}

func toResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	productos := q.Productos
	if productos == nil {
		productos = []entity.QuotationLine{}
	}
	return &dto.QuotationResponse{
		ID:        q.ID,
		Folio:     q.Folio,
		Cliente:   q.Cliente,
		Empresa:   q.Empresa,
		Placa:     q.Placa,
		Fecha:     q.Fecha,
		Estado:    q.Estado,
		Productos: productos,
		Subtotal:  q.Subtotal,
		IVA:       q.IVA,
		Total:     q.Total,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
