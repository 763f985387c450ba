package usecase_test

import (
	"context"
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

type employeeFixture struct {
	uc        *usecase.EmployeeUseCase
	employees *apptest.Employees
	products  *apptest.Products
	vehicles  *apptest.Vehicles
	tx        *apptest.TxRunner
}

func newEmployeeFixture() employeeFixture {
	employees := apptest.NewEmployees(
		&entity.Employee{ID: "emp-1", Nombre: "Carlos Ruiz", Activo: true},
		&entity.Employee{ID: "emp-off", Nombre: "Inactivo", Activo: false},
	)
	products := apptest.NewProducts(
		&entity.Product{ID: "p-filtro", SKU: "FIL-1", Nombre: "Filtro de aceite", Cantidad: 3,
			PrecioUnitario: decimal.NewFromInt(25000), Categoria: entity.CategoriaRepuesto,
			Historial: entity.NewLog[entity.HistoryEntry]()},
		&entity.Product{ID: "p-llave", SKU: "LLA-1", Nombre: "Llave 10mm", Cantidad: 4,
			PrecioUnitario: decimal.NewFromInt(8000), Categoria: entity.CategoriaHerramienta,
			Historial: entity.NewLog[entity.HistoryEntry]()},
	)
	vehicles := apptest.NewVehicles(&entity.Vehicle{ID: "veh-1", Placa: "ABC123", TipoVehiculo: entity.TipoVan, Estado: entity.VehiculoCotizacion})
	tx := &apptest.TxRunner{Repos: repository.Repos{Employees: employees, Products: products, Vehicles: vehicles}}
	return employeeFixture{
		uc:        usecase.NewEmployeeUseCase(employees, vehicles, tx),
		employees: employees,
		products:  products,
		vehicles:  vehicles,
		tx:        tx,
	}
}

func TestEmployee_CreateDefaultsActivo(t *testing.T) {
	f := newEmployeeFixture()
	out, err := f.uc.Create(context.Background(), dto.CreateEmployeeRequest{Nombre: "  Ana  ", Email: "Ana@Taller.CO"})
	require.NoError(t, err)
	assert.True(t, out.Activo)
	assert.Equal(t, "Ana", out.Nombre)
	assert.Equal(t, "ana@taller.co", out.Email)
	assert.NotNil(t, out.Entregas)
}

func TestEmployee_UpdateMissingReturnsNil(t *testing.T) {
	f := newEmployeeFixture()
	name := "x"
	out, err := f.uc.Update(context.Background(), "nope", dto.UpdateEmployeeRequest{Nombre: &name})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestEmployee_DeliverProduct(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	out, err := f.uc.DeliverProduct(ctx, "emp-1", dto.DeliverProductRequest{ProductID: "p-filtro", Cantidad: 2}, "bodega@taller.co")
	require.NoError(t, err)
	require.Len(t, out.Entregas, 1)
	assert.Equal(t, "Filtro de aceite", out.Entregas[0].ProductName)
	assert.Equal(t, 2, out.Entregas[0].Cantidad)

	p, _ := f.products.GetByID(ctx, "p-filtro")
	assert.Equal(t, 1, p.Cantidad)
	last, ok := p.Historial.Last()
	require.True(t, ok)
	assert.Equal(t, entity.AccionEntrega, last.Accion)
	assert.Equal(t, "bodega@taller.co", last.Usuario)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestEmployee_DeliverMoreThanStockChangesNothing(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	_, err := f.uc.DeliverProduct(ctx, "emp-1", dto.DeliverProductRequest{ProductID: "p-filtro", Cantidad: 5}, "u")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := f.products.GetByID(ctx, "p-filtro")
	assert.Equal(t, 3, p.Cantidad)
	assert.Equal(t, 0, p.Historial.Len())
	e, _ := f.employees.GetByID(ctx, "emp-1")
	assert.Empty(t, e.Entregas)
}

func TestEmployee_DeliverHerramientaRecordsAssignment(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	_, err := f.uc.DeliverProduct(ctx, "emp-1", dto.DeliverProductRequest{ProductID: "p-llave", Cantidad: 1}, "u")
	require.NoError(t, err)
	p, _ := f.products.GetByID(ctx, "p-llave")
	require.Len(t, p.Asignaciones, 1)
	assert.Equal(t, "emp-1", p.Asignaciones[0].EmpleadoID)
}

func TestEmployee_DeliverErrors(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	_, err := f.uc.DeliverProduct(ctx, "ghost", dto.DeliverProductRequest{ProductID: "p-filtro", Cantidad: 1}, "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.DeliverProduct(ctx, "emp-off", dto.DeliverProductRequest{ProductID: "p-filtro", Cantidad: 1}, "u")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.DeliverProduct(ctx, "emp-1", dto.DeliverProductRequest{ProductID: "ghost", Cantidad: 1}, "u")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "product_id")
}

func TestEmployee_DeleteInUse(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()
	f.employees.Assigned["emp-1"] = true

	require.ErrorIs(t, f.uc.Delete(ctx, "emp-1"), domain.ErrEmployeeInUse)
	e, _ := f.employees.GetByID(ctx, "emp-1")
	assert.NotNil(t, e)

	assert.ErrorIs(t, f.uc.Delete(ctx, "ghost"), domain.ErrNotFound)
	assert.NoError(t, f.uc.Delete(ctx, "emp-off"))
}

func TestEmployee_AssignVehicle(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	v, err := f.uc.AssignVehicle(ctx, "emp-1", dto.AssignVehicleRequest{VehiculoID: "veh-1"})
	require.NoError(t, err)
	require.NotNil(t, v.EmpleadoAsignado)
	assert.Equal(t, "emp-1", *v.EmpleadoAsignado)

	_, err = f.uc.AssignVehicle(ctx, "emp-1", dto.AssignVehicleRequest{VehiculoID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployee_ListPagination(t *testing.T) {
	f := newEmployeeFixture()
	out, err := f.uc.List(context.Background(), dto.PageRequest{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 1, Total: 2, TotalPages: 2}, out.Pagination)
}

// vanishingEmployees simula un empleado eliminado entre la lectura y la escritura de la entrega.
type vanishingEmployees struct {
	*apptest.Employees
}

func (vanishingEmployees) AppendDelivery(context.Context, string, entity.Delivery) (bool, error) {
	return false, nil
}

func TestEmployee_DeliverToVanishedEmployeeFails(t *testing.T) {
	f := newEmployeeFixture()
	f.tx.Repos.Employees = vanishingEmployees{f.employees}

	_, err := f.uc.DeliverProduct(context.Background(), "emp-1", dto.DeliverProductRequest{ProductID: "p-filtro", Cantidad: 1}, "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
