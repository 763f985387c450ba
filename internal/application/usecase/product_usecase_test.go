package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

func newProductUC(repo *apptest.Products) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, &apptest.TxRunner{Repos: repository.Repos{Products: repo}})
}

// stagedTx ejecuta fn sobre una copia y solo la publica si fn termina sin error.
type stagedTx struct {
	staging   repository.ProductRepository
	committed bool
}

func (s *stagedTx) Run(_ context.Context, fn func(r repository.Repos) error) error {
	if err := fn(repository.Repos{Products: s.staging}); err != nil {
		return err
	}
	s.committed = true
	return nil
}

type failingQuantity struct {
	*apptest.Products
}

func (failingQuantity) SetQuantity(context.Context, string, int, entity.HistoryEntry) (bool, error) {
	return false, errors.New("conexión perdida")
}

func TestProduct_CreateGeneratesSKU(t *testing.T) {
	uc := newProductUC(apptest.NewProducts())
	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "Grasa", Cantidad: 5, PrecioUnitario: decimal.NewFromInt(12000), Categoria: entity.CategoriaInsumo,
	}, "admin@taller.co")
	require.NoError(t, err)
	assert.NotEmpty(t, out.SKU)

	hist, err := uc.History(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.AccionCreacion, hist[0].Accion)
}

func TestProduct_CreateRejectsNegativePrice(t *testing.T) {
	uc := newProductUC(apptest.NewProducts())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Nombre: "x", PrecioUnitario: decimal.NewFromInt(-1), Categoria: entity.CategoriaOtro,
	}, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_AddToInventoryWeightedPrice(t *testing.T) {
	repo := apptest.NewProducts(&entity.Product{
		ID: "p1", SKU: "ACE-15W40", Nombre: "Aceite", Cantidad: 10,
		PrecioUnitario: decimal.NewFromInt(100), Categoria: entity.CategoriaConsumible,
		Historial: entity.NewLog[entity.HistoryEntry](),
	})
	uc := newProductUC(repo)
	ctx := context.Background()

	out, created, err := uc.AddToInventory(ctx, dto.AddToInventoryRequest{
		SKU: "ACE-15W40", Cantidad: 10, PrecioUnitario: decimal.NewFromInt(200),
	}, "u")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 20, out.Cantidad)
	assert.True(t, out.PrecioUnitario.Equal(decimal.NewFromInt(150)), out.PrecioUnitario.String())

	hist, _ := uc.History(ctx, "p1")
	require.Len(t, hist, 1)
	assert.Equal(t, entity.AccionIngresoInventario, hist[0].Accion)
}

func TestProduct_AddToInventoryCreates(t *testing.T) {
	uc := newProductUC(apptest.NewProducts())
	ctx := context.Background()

	_, _, err := uc.AddToInventory(ctx, dto.AddToInventoryRequest{SKU: "NEW-1", Cantidad: 2}, "u")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "nombre")

	out, created, err := uc.AddToInventory(ctx, dto.AddToInventoryRequest{SKU: "NEW-1", Nombre: "Bujía", Cantidad: 2}, "u")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.CategoriaOtro, out.Categoria)
}

func TestProduct_SetQuantityAndReturn(t *testing.T) {
	repo := apptest.NewProducts(&entity.Product{ID: "p1", SKU: "S", Nombre: "Tornillo", Cantidad: 4, Historial: entity.NewLog[entity.HistoryEntry]()})
	uc := newProductUC(repo)
	ctx := context.Background()

	out, err := uc.SetQuantity(ctx, "p1", 9, "u")
	require.NoError(t, err)
	assert.Equal(t, 9, out.Cantidad)

	_, err = uc.SetQuantity(ctx, "p1", -1, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = uc.ReturnToInventory(ctx, "p1", dto.ReturnToInventoryRequest{Cantidad: 3, Empleado: "Carlos"}, "u")
	require.NoError(t, err)
	assert.Equal(t, 12, out.Cantidad)

	hist, _ := uc.History(ctx, "p1")
	require.Len(t, hist, 2)
	assert.Equal(t, entity.AccionDevolucionProducto, hist[0].Accion)
	assert.Contains(t, hist[0].Detalles, "Carlos")
	assert.Equal(t, entity.AccionAjuste, hist[1].Accion)

	missing, err := uc.ReturnToInventory(ctx, "ghost", dto.ReturnToInventoryRequest{Cantidad: 1}, "u")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProduct_CountAndDelete(t *testing.T) {
	repo := apptest.NewProducts(
		&entity.Product{ID: "a", SKU: "A", Cantidad: 2},
		&entity.Product{ID: "b", SKU: "B", Cantidad: 5},
	)
	uc := newProductUC(repo)
	ctx := context.Background()

	c, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.ProductCountResponse{Count: 2, TotalCantidad: 7}, c)

	require.NoError(t, uc.Delete(ctx, "a"))
	assert.ErrorIs(t, uc.Delete(ctx, "a"), domain.ErrNotFound)
}

func TestProduct_UpdateWithQuantityIsAtomic(t *testing.T) {
	seed := func() *entity.Product {
		return &entity.Product{ID: "p1", SKU: "S", Nombre: "Tornillo", Cantidad: 4, Historial: entity.NewLog[entity.HistoryEntry]()}
	}
	repo := apptest.NewProducts(seed())
	tx := &stagedTx{staging: failingQuantity{apptest.NewProducts(seed())}}
	uc := usecase.NewProductUseCase(repo, tx)
	ctx := context.Background()

	nombre, cantidad := "Tornillo M8", 10
	_, err := uc.Update(ctx, "p1", dto.UpdateProductRequest{Nombre: &nombre, Cantidad: &cantidad}, "u")
	require.Error(t, err)
	assert.False(t, tx.committed)

	cur, err := uc.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", cur.Nombre)
	assert.Equal(t, 4, cur.Cantidad)
}

func TestProduct_UpdateNameAndQuantity(t *testing.T) {
	repo := apptest.NewProducts(&entity.Product{ID: "p1", SKU: "S", Nombre: "Tornillo", Cantidad: 4, Historial: entity.NewLog[entity.HistoryEntry]()})
	tx := &apptest.TxRunner{Repos: repository.Repos{Products: repo}}
	uc := usecase.NewProductUseCase(repo, tx)
	ctx := context.Background()

	nombre, cantidad := "Tornillo M8", 10
	out, err := uc.Update(ctx, "p1", dto.UpdateProductRequest{Nombre: &nombre, Cantidad: &cantidad}, "u")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo M8", out.Nombre)
	assert.Equal(t, 10, out.Cantidad)
	assert.Equal(t, 1, tx.Calls)

	hist, _ := uc.History(ctx, "p1")
	require.Len(t, hist, 1)
	assert.Equal(t, entity.AccionAjuste, hist[0].Accion)

	negativa := -2
	_, err = uc.Update(ctx, "p1", dto.UpdateProductRequest{Cantidad: &negativa}, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.Update(ctx, "ghost", dto.UpdateProductRequest{Nombre: &nombre}, "u")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
