package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

func newVehicleUseCase() (*usecase.VehicleUseCase, *apptest.Products) {
	employees := apptest.NewEmployees(&entity.Employee{ID: "emp-1", Nombre: "Luis", Activo: true})
	products := apptest.NewProducts(&entity.Product{ID: "p1", SKU: "LL-1", Nombre: "Llanta", Cantidad: 4, Historial: entity.NewLog[entity.HistoryEntry]()})
	vehicles := apptest.NewVehicles()
	tx := &apptest.TxRunner{Repos: repository.Repos{Employees: employees, Products: products, Vehicles: vehicles}}
	return usecase.NewVehicleUseCase(vehicles, employees, tx), products
}

func TestVehicle_CreateNormalizesPlaca(t *testing.T) {
	uc, _ := newVehicleUseCase()
	out, err := uc.Create(context.Background(), dto.CreateVehicleRequest{Placa: " abc-123 ", TipoVehiculo: entity.TipoTrailer})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", out.Placa)
	assert.Equal(t, entity.VehiculoCotizacion, out.Estado)
	assert.NotNil(t, out.Productos)
}

func TestVehicle_CreateValidation(t *testing.T) {
	uc, _ := newVehicleUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateVehicleRequest{Placa: "12", TipoVehiculo: entity.TipoVan})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "placa")

	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Placa: "ABC123", TipoVehiculo: "Moto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Placa: "ABC123", TipoVehiculo: entity.TipoVan})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Placa: "abc123", TipoVehiculo: entity.TipoVan})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestVehicle_AssignEmployee(t *testing.T) {
	uc, _ := newVehicleUseCase()
	ctx := context.Background()
	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Placa: "XYZ987", TipoVehiculo: entity.TipoBotellero})
	require.NoError(t, err)

	emp := "emp-1"
	out, err := uc.AssignEmployee(ctx, v.ID, dto.AssignEmployeeRequest{EmployeeID: &emp})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", *out.EmpleadoAsignado)

	ghost := "ghost"
	_, err = uc.AssignEmployee(ctx, v.ID, dto.AssignEmployeeRequest{EmployeeID: &ghost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = uc.AssignEmployee(ctx, v.ID, dto.AssignEmployeeRequest{})
	require.NoError(t, err)
	assert.Nil(t, out.EmpleadoAsignado)

	out, err = uc.AssignEmployee(ctx, "nope", dto.AssignEmployeeRequest{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestVehicle_UpdateStatus(t *testing.T) {
	uc, _ := newVehicleUseCase()
	ctx := context.Background()
	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Placa: "DEF456", TipoVehiculo: entity.TipoVan})
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, v.ID, dto.UpdateVehicleStatusRequest{Estado: entity.VehiculoReparado})
	require.NoError(t, err)
	assert.Equal(t, entity.VehiculoReparado, out.Estado)

	_, err = uc.UpdateStatus(ctx, v.ID, dto.UpdateVehicleStatusRequest{Estado: "perdido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVehicle_AssignProduct(t *testing.T) {
	uc, products := newVehicleUseCase()
	ctx := context.Background()
	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Placa: "GHI789", TipoVehiculo: entity.TipoTrailer})
	require.NoError(t, err)

	out, err := uc.AssignProduct(ctx, v.ID, dto.AssignProductRequest{ProductID: "p1", Cantidad: 3}, "sup@taller.co")
	require.NoError(t, err)
	require.Len(t, out.Productos, 1)
	assert.Equal(t, "Llanta", out.Productos[0].Nombre)
	assert.Equal(t, "sup@taller.co", out.Productos[0].AsignadoPor)

	p, _ := products.GetByID(ctx, "p1")
	assert.Equal(t, 1, p.Cantidad)
	last, _ := p.Historial.Last()
	assert.Equal(t, entity.AccionAsignacionVehiculo, last.Accion)

	_, err = uc.AssignProduct(ctx, v.ID, dto.AssignProductRequest{ProductID: "p1", Cantidad: 2}, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.AssignProduct(ctx, "ghost", dto.AssignProductRequest{ProductID: "p1", Cantidad: 1}, "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBayAndProvider_CRUD(t *testing.T) {
	ctx := context.Background()
	bays := usecase.NewBayUseCase(apptest.NewBays())

	b, err := bays.Create(ctx, dto.BayRequest{Nombre: "Bahía 1"})
	require.NoError(t, err)
	assert.False(t, b.Ocupada)

	b, err = bays.Update(ctx, b.ID, dto.BayRequest{Nombre: "Bahía 1", Vehiculos: []entity.BayVehicle{{Placa: "abc123"}}})
	require.NoError(t, err)
	assert.True(t, b.Ocupada)
	assert.Equal(t, "ABC123", b.Vehiculos[0].Placa)

	require.NoError(t, bays.Delete(ctx, b.ID))
	assert.ErrorIs(t, bays.Delete(ctx, b.ID), domain.ErrNotFound)

	providers := usecase.NewProviderUseCase(apptest.NewProviders())
	p, err := providers.Create(ctx, dto.ProviderRequest{Nombre: " Repuestos del Norte ", MetodoPago: entity.PaymentMethod{Banco: "Bancolombia"}})
	require.NoError(t, err)
	assert.Equal(t, "Repuestos del Norte", p.Nombre)

	list, err := providers.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Pagination.Total)
	assert.Equal(t, dto.DefaultLimit, list.Pagination.Limit)

	missing, err := providers.Update(ctx, "ghost", dto.ProviderRequest{Nombre: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}
