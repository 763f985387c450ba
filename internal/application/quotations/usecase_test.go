package quotations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type fakePDF struct{ folio string }

func (f *fakePDF) GenerateQuotationPDF(_ context.Context, q *entity.Quotation) ([]byte, error) {
	f.folio = q.Folio
	return []byte("%PDF-1.4"), nil
}

type fakeExporter struct{ n int }

func (f *fakeExporter) ExportQuotations(_ context.Context, qs []*entity.Quotation) ([]byte, error) {
	f.n = len(qs)
	return []byte("xlsx"), nil
}

func newUseCase(t *testing.T) (*UseCase, *apptest.Quotations) {
	t.Helper()
	repo := apptest.NewQuotations()
	tx := &apptest.TxRunner{Repos: repository.Repos{Quotations: repo}}
	uc := NewUseCase(repo, tx, &fakePDF{}, &fakeExporter{}, nil)
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return uc, repo
}

func line(nombre string, cant, precio int64) dto.QuotationLineInput {
	return dto.QuotationLineInput{Nombre: nombre, Cantidad: decimal.NewFromInt(cant), PrecioUnitario: decimal.NewFromInt(precio), Proveedor: "Repuestos del Norte"}
}

func createSample(t *testing.T, uc *UseCase) *dto.QuotationResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateQuotationRequest{
		Placa: "abc123", Empresa: "Transportes Andinos",
		Productos: []dto.QuotationLineInput{line("Filtro", 2, 50000), line("Aceite", 1, 100000)},
	})
	require.NoError(t, err)
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_FolioAndTotals(t *testing.T) {
	uc, _ := newUseCase(t)
	q := createSample(t, uc)

	assert.Equal(t, "COT-0001", q.Folio)
	assert.Equal(t, "ABC123", q.Placa)
	assert.Equal(t, entity.CotizacionPendiente, q.Estado)
	assert.True(t, q.Subtotal.Equal(dec("200000")))
	assert.True(t, q.IVA.Equal(dec("38000")))
	assert.True(t, q.Total.Equal(dec("238000")))
	require.Len(t, q.Productos, 2)
	assert.Equal(t, 1, q.Productos[0].LineID)
	assert.Equal(t, 2, q.Productos[1].LineID)
	assert.Equal(t, entity.LineaPendiente, q.Productos[0].Estado)

	q2 := createSample(t, uc)
	assert.Equal(t, "COT-0002", q2.Folio)
}

func TestCreate_IgnoresClientTotalsAndValidates(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Create(context.Background(), dto.CreateQuotationRequest{Placa: "ABC123", Empresa: "E"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "productos")

	_, err = uc.Create(context.Background(), dto.CreateQuotationRequest{
		Placa: "ABC123", Empresa: "E", Productos: []dto.QuotationLineInput{line("x", 0, 10)},
	})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "productos[0].cantidad")
}

func TestCreate_ConcurrentFoliosAreUnique(t *testing.T) {
	uc, _ := newUseCase(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := uc.Create(context.Background(), dto.CreateQuotationRequest{
				Placa: "XYZ987", Empresa: "E", Productos: []dto.QuotationLineInput{line("x", 1, 1)},
			})
			if assert.NoError(t, err) {
				mu.Lock()
				seen[q.Folio] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 20)
}

func TestUpdateProducts_ByLineID(t *testing.T) {
	uc, _ := newUseCase(t)
	q := createSample(t, uc)

	yes := true
	out, err := uc.UpdateProducts(context.Background(), q.ID, dto.UpdateQuotationProductsRequest{
		Productos: []dto.LinePatchRequest{{LineID: 2, Eliminado: &yes}, {LineID: 1, Aprobado: &yes}},
	})
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(dec("100000")))
	assert.True(t, out.Total.Equal(dec("119000")))
	assert.Equal(t, entity.LineaAprobado, out.Productos[0].Estado)
	assert.Equal(t, entity.LineaEliminado, out.Productos[1].Estado)

	_, err = uc.UpdateProducts(context.Background(), q.ID, dto.UpdateQuotationProductsRequest{
		Productos: []dto.LinePatchRequest{{LineID: 9, Aprobado: &yes}},
	})
	assert.ErrorIs(t, err, domain.ErrQuotationLineNotFound)

	missing, err := uc.UpdateProducts(context.Background(), "ghost", dto.UpdateQuotationProductsRequest{
		Productos: []dto.LinePatchRequest{{LineID: 1, Aprobado: &yes}},
	})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBatchUpdate_AllOrNothing(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	a := createSample(t, uc)
	b := createSample(t, uc)
	yes := true

	_, err := uc.BatchUpdateProducts(ctx, dto.BatchUpdateProductsRequest{Updates: []dto.BatchLinePatchRequest{
		{QuotationID: a.ID, LinePatchRequest: dto.LinePatchRequest{LineID: 1, Eliminado: &yes}},
		{QuotationID: b.ID, LinePatchRequest: dto.LinePatchRequest{LineID: 42, Eliminado: &yes}},
	}})
	require.ErrorIs(t, err, domain.ErrQuotationLineNotFound)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(dec("238000")), "a no debe cambiar")

	out, err := uc.BatchUpdateProducts(ctx, dto.BatchUpdateProductsRequest{Updates: []dto.BatchLinePatchRequest{
		{QuotationID: a.ID, LinePatchRequest: dto.LinePatchRequest{LineID: 1, Eliminado: &yes}},
		{QuotationID: b.ID, LinePatchRequest: dto.LinePatchRequest{LineID: 2, Eliminado: &yes}},
		{QuotationID: a.ID, LinePatchRequest: dto.LinePatchRequest{LineID: 2, Aprobado: &yes}},
	}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Subtotal.Equal(dec("100000")))
	assert.True(t, out[1].Subtotal.Equal(dec("100000")))

	_, err = uc.BatchUpdateProducts(ctx, dto.BatchUpdateProductsRequest{Updates: []dto.BatchLinePatchRequest{
		{QuotationID: "ghost", LinePatchRequest: dto.LinePatchRequest{LineID: 1, Eliminado: &yes}},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ReplacesLinesKeepingIDs(t *testing.T) {
	uc, _ := newUseCase(t)
	q := createSample(t, uc)

	lines := []dto.QuotationLineInput{line("Aceite", 2, 100000), line("Bujía", 4, 10000)}
	lines[0].LineID = 2
	cliente := "Juan Pérez"
	out, err := uc.Update(context.Background(), q.ID, dto.UpdateQuotationRequest{Cliente: &cliente, Productos: &lines})
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", out.Cliente)
	require.Len(t, out.Productos, 2)
	assert.Equal(t, 2, out.Productos[0].LineID)
	assert.Equal(t, 3, out.Productos[1].LineID)
	assert.True(t, out.Subtotal.Equal(dec("240000")))
	assert.Equal(t, q.Folio, out.Folio)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	q := createSample(t, uc)

	out, err := uc.UpdateStatus(ctx, q.ID, dto.UpdateQuotationStatusRequest{Estado: entity.CotizacionAprobada})
	require.NoError(t, err)
	assert.Equal(t, entity.CotizacionAprobada, out.Estado)

	out, err = uc.UpdateStatus(ctx, q.ID, dto.UpdateQuotationStatusRequest{Estado: entity.CotizacionPendiente})
	require.NoError(t, err)
	assert.Equal(t, entity.CotizacionPendiente, out.Estado)

	_, err = uc.UpdateStatus(ctx, q.ID, dto.UpdateQuotationStatusRequest{Estado: "facturada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, q.ID))
	assert.ErrorIs(t, uc.Delete(ctx, q.ID), domain.ErrNotFound)

	next := createSample(t, uc)
	assert.Equal(t, "COT-0002", next.Folio)
}

func TestSuggestionsAndDocuments(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	q := createSample(t, uc)

	s, err := uc.Suggestions(ctx, "norte")
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, "ABC123", s[0].Placa)

	s, err = uc.Suggestions(ctx, " ")
	require.NoError(t, err)
	assert.Empty(t, s)

	data, name, err := uc.PDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "COT-0001.pdf", name)
	assert.NotEmpty(t, data)

	_, _, err = uc.PDF(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, name, err = uc.Export(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "cotizaciones-20260601.xlsx", name)
	assert.Equal(t, 1, uc.exporter.(*fakeExporter).n)
}

func TestSuggestions_IncluyeCotizacionesAntiguas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateQuotationRequest{
		Placa: "LAC001", Empresa: "Lácteos Únicos",
		Productos: []dto.QuotationLineInput{line("Correa", 1, 30000)},
	})
	require.NoError(t, err)
	for i := 0; i < 600; i++ {
		createSample(t, uc)
	}

	s, err := uc.Suggestions(ctx, "lacteos")
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, "LAC001", s[0].Placa)
	assert.Equal(t, "Lácteos Únicos", s[0].Empresa)
	assert.Equal(t, "30000.00", s[0].PrecioUnitario)
}

func TestList_FilterAndPagination(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		createSample(t, uc)
	}
	out, err := uc.List(ctx, dto.PageRequest{Limit: 2}, "")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "COT-0003", out.Items[0].Folio)
	assert.Equal(t, 2, out.Pagination.TotalPages)

	_, err = uc.List(ctx, dto.PageRequest{}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
