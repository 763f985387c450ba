// Package checkin registra la entrada (ingreso) y la entrega (salida) de vehículos
// con su evidencia fotográfica y firmas.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Campos multipart reconocidos.
const (
	FieldFotos           = "fotos"
	FieldFirmaSupervisor = "firma_supervisor"
	FieldFirmaConductor  = "firma_conductor"
	FieldFirmaEntrega    = "firma_entrega"
)

// Prioridades de reparación.
const (
	PrioridadBaja  = "baja"
	PrioridadMedia = "media"
	PrioridadAlta  = "alta"
)

// UseCase casos de uso de ingresos y salidas.
type UseCase struct {
	ingresos repository.IngresoRepository
	salidas  repository.SalidaRepository
	txRunner repository.TxRunner
	files    ports.FileStore
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	ingresos repository.IngresoRepository,
	salidas repository.SalidaRepository,
	txRunner repository.TxRunner,
	files ports.FileStore,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{ingresos: ingresos, salidas: salidas, txRunner: txRunner, files: files, log: log, now: time.Now}
}

// evidence agrupa las referencias guardadas por campo.
type evidence struct {
	all    []string
	fotos  []string
	firmas map[string]string
}

// storeEvidence guarda fotos y firmas. Cada firma requerida debe llegar exactamente una vez.
func (uc *UseCase) storeEvidence(ctx context.Context, files []ports.Upload, firmas ...string) (*evidence, error) {
	ve := &domain.ValidationError{}
	count := map[string]int{}
	for _, f := range files {
		count[f.Field]++
	}
	for _, name := range firmas {
		switch count[name] {
		case 0:
			ve.Add(name, "la firma es requerida")
		case 1:
		default:
			ve.Add(name, "solo se admite un archivo")
		}
	}
	for field := range count {
		if field != FieldFotos && !contains(firmas, field) {
			ve.Add(field, "campo de archivo no reconocido")
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	refs, err := uc.files.Store(ctx, files)
	if err != nil {
		return nil, err
	}
	ev := &evidence{all: refs, fotos: []string{}, firmas: map[string]string{}}
	for i, f := range files {
		if f.Field == FieldFotos {
			ev.fotos = append(ev.fotos, refs[i])
		} else {
			ev.firmas[f.Field] = refs[i]
		}
	}
	return ev, nil
}

// discard elimina archivos de una operación fallida; el error solo se registra.
func (uc *UseCase) discard(ctx context.Context, refs []string) {
	if len(refs) == 0 {
		return
	}
	if err := uc.files.Remove(ctx, refs); err != nil {
		logger.FromContext(ctx, uc.log).Warn().Err(err).Strs("refs", refs).Msg("no se pudieron eliminar archivos huérfanos")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func checkRepairs(reps []entity.Repair) ([]entity.Repair, error) {
	out := make([]entity.Repair, 0, len(reps))
	ve := &domain.ValidationError{}
	for i, r := range reps {
		r.Descripcion = strings.TrimSpace(r.Descripcion)
		if r.Descripcion == "" {
			ve.Add(fmt.Sprintf("reparaciones[%d].descripcion", i), "es requerida")
		}
		switch r.Prioridad {
		case "":
			r.Prioridad = PrioridadMedia
		case PrioridadBaja, PrioridadMedia, PrioridadAlta:
		default:
			ve.Add(fmt.Sprintf("reparaciones[%d].prioridad", i), "debe ser baja, media o alta")
		}
		out = append(out, r)
	}
	return out, ve.OrNil()
}

// CreateIngreso registra la entrada de un vehículo. Requiere firma del supervisor y del conductor.
// Si la inserción falla, los archivos ya guardados se eliminan.
func (uc *UseCase) CreateIngreso(ctx context.Context, in dto.CreateIngresoRequest, files []ports.Upload) (*dto.IngresoResponse, error) {
	ve := &domain.ValidationError{}
	required := map[string]string{
		"empresa":            in.Empresa,
		"conductor_nombre":   in.ConductorNombre,
		"conductor_telefono": in.ConductorTelefono,
		"vehiculo_placa":     in.VehiculoPlaca,
		"vehiculo_tipo":      in.VehiculoTipo,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			ve.Add(field, "es requerido")
		}
	}
	reps, err := checkRepairs(in.Reparaciones)
	if err != nil {
		var rve *domain.ValidationError
		if errors.As(err, &rve) {
			for k, v := range rve.Fields {
				ve.Add(k, v)
			}
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	ev, err := uc.storeEvidence(ctx, files, FieldFirmaSupervisor, FieldFirmaConductor)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	fecha := now
	if in.FechaIngreso != nil {
		fecha = *in.FechaIngreso
	}
	ing := &entity.Ingreso{
		ID:                uuid.New().String(),
		FechaIngreso:      fecha,
		Empresa:           strings.TrimSpace(in.Empresa),
		ConductorNombre:   strings.TrimSpace(in.ConductorNombre),
		ConductorTelefono: strings.TrimSpace(in.ConductorTelefono),
		ConductorCedula:   strings.TrimSpace(in.ConductorCedula),
		VehiculoPlaca:     entity.NormalizePlaca(in.VehiculoPlaca),
		VehiculoTipo:      strings.TrimSpace(in.VehiculoTipo),
		Reparaciones:      reps,
		Fotos:             ev.fotos,
		FirmaSupervisor:   ev.firmas[FieldFirmaSupervisor],
		FirmaConductor:    ev.firmas[FieldFirmaConductor],
		Observaciones:     in.Observaciones,
		Estado:            entity.IngresoIngresado,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.ingresos.Create(ctx, ing); err != nil {
		uc.discard(ctx, ev.all)
		return nil, err
	}
	logger.FromContext(ctx, uc.log).Info().Str("ingreso_id", ing.ID).Str("placa", ing.VehiculoPlaca).Int("fotos", len(ing.Fotos)).Msg("ingreso registrado")
	return toIngresoResponse(ing), nil
}

// GetIngreso obtiene un ingreso.
func (uc *UseCase) GetIngreso(ctx context.Context, id string) (*dto.IngresoResponse, error) {
	in, err := uc.ingresos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toIngresoResponse(in), nil
}

// ListIngresos lista ingresos del más reciente al más antiguo.
func (uc *UseCase) ListIngresos(ctx context.Context, p dto.PageRequest, estado string) (*dto.ListResponse[dto.IngresoResponse], error) {
	if estado != "" && !entity.ValidEstadoIngreso(estado) {
		return nil, domain.NewValidationError("estado", "estado de ingreso desconocido")
	}
	p.Normalize()
	list, total, err := uc.ingresos.List(ctx, repository.IngresoFilter{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search},
		Estado:     estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngresoResponse, 0, len(list))
	for _, in := range list {
		items = append(items, *toIngresoResponse(in))
	}
	return &dto.ListResponse[dto.IngresoResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// UpdateIngreso cambia estado, observaciones o reparaciones.
func (uc *UseCase) UpdateIngreso(ctx context.Context, id string, in dto.UpdateIngresoRequest) (*dto.IngresoResponse, error) {
	ing, err := uc.ingresos.GetByID(ctx, id)
	if err != nil || ing == nil {
		return nil, err
	}
	if in.Estado != nil {
		if !entity.ValidEstadoIngreso(*in.Estado) {
			return nil, domain.NewValidationError("estado", "estado de ingreso desconocido")
		}
		ing.Estado = *in.Estado
	}
	if in.Observaciones != nil {
		ing.Observaciones = *in.Observaciones
	}
	if in.Reparaciones != nil {
		reps, err := checkRepairs(*in.Reparaciones)
		if err != nil {
			return nil, err
		}
		ing.Reparaciones = reps
	}
	ing.UpdatedAt = uc.now()
	if err := uc.ingresos.Update(ctx, ing); err != nil {
		return nil, err
	}
	return toIngresoResponse(ing), nil
}

// DeleteIngreso elimina un ingreso sin salida y su evidencia.
// Con salida asociada devuelve ErrIngresoHasSalida.
func (uc *UseCase) DeleteIngreso(ctx context.Context, id string) error {
	ing, err := uc.ingresos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.ingresos.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	refs := append([]string{}, ing.Fotos...)
	for _, f := range []string{ing.FirmaSupervisor, ing.FirmaConductor} {
		if f != "" {
			refs = append(refs, f)
		}
	}
	uc.discard(ctx, refs)
	return nil
}

// CreateSalida registra la entrega de un vehículo ingresado. En una transacción bloquea
// el ingreso, verifica que no tenga salida, inserta la salida y actualiza el estado del
// ingreso: completado si todas las reparaciones se realizaron, en_reparacion si no.
func (uc *UseCase) CreateSalida(ctx context.Context, in dto.CreateSalidaRequest, files []ports.Upload) (*dto.SalidaResponse, error) {
	ingresoID := strings.TrimSpace(in.IngresoID)
	if ingresoID == "" {
		return nil, domain.NewValidationError("ingreso_id", "es requerido")
	}
	ve := &domain.ValidationError{}
	reps := make([]entity.PerformedRepair, 0, len(in.Reparaciones))
	for i, r := range in.Reparaciones {
		r.Descripcion = strings.TrimSpace(r.Descripcion)
		if r.Descripcion == "" {
			ve.Add(fmt.Sprintf("reparaciones[%d].descripcion", i), "es requerida")
		}
		reps = append(reps, r)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	// El ingreso debe existir antes de guardar archivos.
	ing, err := uc.ingresos.GetByID(ctx, ingresoID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.NewValidationError("ingreso_id", "el ingreso no existe")
	}

	ev, err := uc.storeEvidence(ctx, files, FieldFirmaEntrega)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	fecha := now
	if in.FechaSalida != nil {
		fecha = *in.FechaSalida
	}
	s := &entity.Salida{
		ID:            uuid.New().String(),
		IngresoID:     ingresoID,
		FechaSalida:   fecha,
		Reparaciones:  reps,
		Fotos:         ev.fotos,
		FirmaEntrega:  ev.firmas[FieldFirmaEntrega],
		Estado:        entity.SalidaEstadoFor(reps),
		Observaciones: in.Observaciones,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		locked, err := r.Ingresos.GetForUpdate(ctx, ingresoID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.NewValidationError("ingreso_id", "el ingreso no existe")
		}
		prev, err := r.Salidas.GetByIngresoID(ctx, ingresoID)
		if err != nil {
			return err
		}
		if prev != nil {
			return domain.ErrIngresoAlreadyReleased
		}
		if err := r.Salidas.Create(ctx, s); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrIngresoAlreadyReleased
			}
			return err
		}
		estado := entity.IngresoEnReparacion
		if s.Estado == entity.SalidaCompletado {
			estado = entity.IngresoCompletado
		}
		return r.Ingresos.SetEstado(ctx, ingresoID, estado)
	})
	if err != nil {
		uc.discard(ctx, ev.all)
		return nil, err
	}
	logger.FromContext(ctx, uc.log).Info().Str("salida_id", s.ID).Str("ingreso_id", ingresoID).Str("estado", s.Estado).Msg("salida registrada")
	return toSalidaResponse(s), nil
}

// GetSalida obtiene una salida.
func (uc *UseCase) GetSalida(ctx context.Context, id string) (*dto.SalidaResponse, error) {
	s, err := uc.salidas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSalidaResponse(s), nil
}

// GetSalidaByIngreso salida asociada a un ingreso, si existe.
func (uc *UseCase) GetSalidaByIngreso(ctx context.Context, ingresoID string) (*dto.SalidaResponse, error) {
	s, err := uc.salidas.GetByIngresoID(ctx, ingresoID)
	if err != nil {
		return nil, err
	}
	return toSalidaResponse(s), nil
}

// ListSalidas lista salidas de la más reciente a la más antigua.
func (uc *UseCase) ListSalidas(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.SalidaResponse], error) {
	p.Normalize()
	list, total, err := uc.salidas.List(ctx, repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalidaResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSalidaResponse(s))
	}
	return &dto.ListResponse[dto.SalidaResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

func toIngresoResponse(in *entity.Ingreso) *dto.IngresoResponse {
	if in == nil {
		return nil
	}
	reps, fotos := in.Reparaciones, in.Fotos
	if reps == nil {
		reps = []entity.Repair{}
	}
	if fotos == nil {
		fotos = []string{}
	}
	return &dto.IngresoResponse{
		ID:                in.ID,
		FechaIngreso:      in.FechaIngreso,
		Empresa:           in.Empresa,
		ConductorNombre:   in.ConductorNombre,
		ConductorTelefono: in.ConductorTelefono,
		ConductorCedula:   in.ConductorCedula,
		VehiculoPlaca:     in.VehiculoPlaca,
		VehiculoTipo:      in.VehiculoTipo,
		Reparaciones:      reps,
		Fotos:             fotos,
		FirmaSupervisor:   in.FirmaSupervisor,
		FirmaConductor:    in.FirmaConductor,
		Observaciones:     in.Observaciones,
		Estado:            in.Estado,
		CreatedAt:         in.CreatedAt,
		UpdatedAt:         in.UpdatedAt,
	}
}

func toSalidaResponse(s *entity.Salida) *dto.SalidaResponse {
	if s == nil {
		return nil
	}
	reps, fotos := s.Reparaciones, s.Fotos
	if reps == nil {
		reps = []entity.PerformedRepair{}
	}
	if fotos == nil {
		fotos = []string{}
	}
	return &dto.SalidaResponse{
		ID:            s.ID,
		IngresoID:     s.IngresoID,
		FechaSalida:   s.FechaSalida,
		Reparaciones:  reps,
		Fotos:         fotos,
		FirmaEntrega:  s.FirmaEntrega,
		Estado:        s.Estado,
		Observaciones: s.Observaciones,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
