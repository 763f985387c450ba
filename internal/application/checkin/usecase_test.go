package checkin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type fixture struct {
	uc    *UseCase
	store *apptest.Checkins
	files *apptest.Files
}

func newFixture() fixture {
	store := apptest.NewCheckins()
	files := apptest.NewFiles()
	tx := &apptest.TxRunner{Repos: repository.Repos{Ingresos: store.Ingresos(), Salidas: store.Salidas()}}
	return fixture{uc: NewUseCase(store.Ingresos(), store.Salidas(), tx, files, nil), store: store, files: files}
}

func upload(field, name string) ports.Upload {
	return ports.Upload{Field: field, Filename: name, Content: []byte{0x89, 'P', 'N', 'G'}}
}

func ingresoFiles() []ports.Upload {
	return []ports.Upload{
		upload(FieldFotos, "frente.jpg"),
		upload(FieldFotos, "lateral.jpg"),
		upload(FieldFirmaSupervisor, "sup.png"),
		upload(FieldFirmaConductor, "cond.png"),
	}
}

func ingresoRequest() dto.CreateIngresoRequest {
	return dto.CreateIngresoRequest{
		Empresa:           "Lácteos del Valle",
		ConductorNombre:   "Pedro Gómez",
		ConductorTelefono: "3001234567",
		VehiculoPlaca:     "xyz-987",
		VehiculoTipo:      "Van",
		Reparaciones: []entity.Repair{
			{Descripcion: "Cambio de frenos", Prioridad: PrioridadAlta},
			{Descripcion: "Revisión luces"},
		},
	}
}

func (f fixture) createIngreso(t *testing.T) *dto.IngresoResponse {
	t.Helper()
	out, err := f.uc.CreateIngreso(context.Background(), ingresoRequest(), ingresoFiles())
	require.NoError(t, err)
	return out
}

func TestCreateIngreso(t *testing.T) {
	f := newFixture()
	out := f.createIngreso(t)

	assert.Equal(t, entity.IngresoIngresado, out.Estado)
	assert.Equal(t, "XYZ-987", out.VehiculoPlaca)
	assert.Len(t, out.Fotos, 2)
	assert.Equal(t, "/uploads/firma_supervisor-sup.png", out.FirmaSupervisor)
	assert.Equal(t, "/uploads/firma_conductor-cond.png", out.FirmaConductor)
	assert.Equal(t, PrioridadMedia, out.Reparaciones[1].Prioridad)
	assert.Len(t, f.files.Stored, 4)
}

func TestCreateIngreso_RequiresSignaturesAndFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateIngreso(ctx, ingresoRequest(), []ports.Upload{upload(FieldFirmaSupervisor, "s.png")})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, FieldFirmaConductor)
	assert.Empty(t, f.files.Stored)

	req := ingresoRequest()
	req.Empresa = " "
	req.Reparaciones = []entity.Repair{{Descripcion: "x", Prioridad: "urgente"}}
	_, err = f.uc.CreateIngreso(ctx, req, ingresoFiles())
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "empresa")
	assert.Contains(t, ve.Fields, "reparaciones[0].prioridad")

	files := append(ingresoFiles(), upload("otro", "x.png"))
	_, err = f.uc.CreateIngreso(ctx, ingresoRequest(), files)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "otro")
}

func TestCreateIngreso_StorageFailure(t *testing.T) {
	f := newFixture()
	f.files.Err = errors.New("disk full")
	_, err := f.uc.CreateIngreso(context.Background(), ingresoRequest(), ingresoFiles())
	require.Error(t, err)
	list, _ := f.uc.ListIngresos(context.Background(), dto.PageRequest{}, "")
	assert.Empty(t, list.Items)
}

func TestCreateSalida_CompletesIngreso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ing := f.createIngreso(t)

	s, err := f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{
		IngresoID: ing.ID,
		Reparaciones: []entity.PerformedRepair{
			{Descripcion: "Cambio de frenos", Realizada: true},
			{Descripcion: "Revisión luces", Realizada: true},
		},
	}, []ports.Upload{upload(FieldFirmaEntrega, "entrega.png")})
	require.NoError(t, err)
	assert.Equal(t, entity.SalidaCompletado, s.Estado)

	got, err := f.uc.GetIngreso(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IngresoCompletado, got.Estado)

	byIngreso, err := f.uc.GetSalidaByIngreso(ctx, ing.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, byIngreso.ID)
}

func TestCreateSalida_PartialLeavesIngresoEnReparacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ing := f.createIngreso(t)

	s, err := f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{
		IngresoID: ing.ID,
		Reparaciones: []entity.PerformedRepair{
			{Descripcion: "Cambio de frenos", Realizada: true},
			{Descripcion: "Revisión luces"},
		},
	}, []ports.Upload{upload(FieldFirmaEntrega, "entrega.png")})
	require.NoError(t, err)
	assert.Equal(t, entity.SalidaParcial, s.Estado)

	got, _ := f.uc.GetIngreso(ctx, ing.ID)
	assert.Equal(t, entity.IngresoEnReparacion, got.Estado)
}

func TestCreateSalida_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	firma := []ports.Upload{upload(FieldFirmaEntrega, "e.png")}

	_, err := f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{}, firma)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{IngresoID: "ghost"}, firma)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "ingreso_id")

	ing := f.createIngreso(t)
	_, err = f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{IngresoID: ing.ID}, firma)
	require.NoError(t, err)

	stored := len(f.files.Stored)
	_, err = f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{IngresoID: ing.ID}, []ports.Upload{upload(FieldFirmaEntrega, "otra.png")})
	require.ErrorIs(t, err, domain.ErrIngresoAlreadyReleased)
	assert.Equal(t, stored, len(f.files.Stored), "la firma de la salida rechazada se elimina")
	assert.Contains(t, f.files.Removed, "/uploads/firma_entrega-otra.png")
}

func TestDeleteIngreso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	free := f.createIngreso(t)
	require.NoError(t, f.uc.DeleteIngreso(ctx, free.ID))
	assert.Len(t, f.files.Removed, 4)
	assert.ErrorIs(t, f.uc.DeleteIngreso(ctx, free.ID), domain.ErrNotFound)

	released := f.createIngreso(t)
	_, err := f.uc.CreateSalida(ctx, dto.CreateSalidaRequest{IngresoID: released.ID}, []ports.Upload{upload(FieldFirmaEntrega, "e.png")})
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.DeleteIngreso(ctx, released.ID), domain.ErrIngresoHasSalida)
}

func TestUpdateIngreso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ing := f.createIngreso(t)

	estado := entity.IngresoEnRevision
	obs := "llega con golpe en puerta"
	out, err := f.uc.UpdateIngreso(ctx, ing.ID, dto.UpdateIngresoRequest{Estado: &estado, Observaciones: &obs})
	require.NoError(t, err)
	assert.Equal(t, entity.IngresoEnRevision, out.Estado)
	assert.Equal(t, obs, out.Observaciones)

	missing, err := f.uc.UpdateIngreso(ctx, "ghost", dto.UpdateIngresoRequest{Estado: &estado})
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := f.uc.ListIngresos(ctx, dto.PageRequest{}, entity.IngresoEnRevision)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
