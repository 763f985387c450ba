// Package tools orquesta el ciclo de vida de las herramientas: cada transición se
// planea en el dominio y se persiste en una única escritura condicionada.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tooling"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

const skuAttempts = 3

// UseCase casos de uso de herramientas.
type UseCase struct {
	repo      repository.ToolRepository
	employees repository.EmployeeRepository
	exporter  ToolExporter
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. exporter puede ser nil si no se expone /export.
func NewUseCase(repo repository.ToolRepository, employees repository.EmployeeRepository, exporter ToolExporter, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, employees: employees, exporter: exporter, log: log, now: time.Now}
}

// Create registra una herramienta en stock con historial vacío.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateToolRequest) (*dto.ToolResponse, error) {
	if in.Precio.IsNegative() {
		return nil, domain.NewValidationError("precio", "no puede ser negativo")
	}
	now := uc.now()
	t := &entity.Tool{
		ID:        uuid.New().String(),
		SKU:       strings.TrimSpace(in.SKU),
		Nombre:    strings.TrimSpace(in.Nombre),
		Precio:    in.Precio,
		Categoria: in.Categoria,
		Proveedor: in.Proveedor,
		Ubicacion: in.Ubicacion,
		Estado:    entity.ToolStock,
		Historial: entity.NewLog[entity.ToolEvent](),
		Activa:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.SKU != "" {
		if err := uc.repo.Create(ctx, t); err != nil {
			return nil, err
		}
		return toResponse(t), nil
	}
	var err error
	for i := 0; i < skuAttempts; i++ {
		t.SKU = inventory.GenerateSKU()
		if err = uc.repo.Create(ctx, t); !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

// GetByID obtiene una herramienta activa.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ToolResponse, error) {
	t, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.Tool, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.Activa {
		return nil, nil
	}
	return t, nil
}

// Update modifica datos descriptivos; estado, asignación e historial no se tocan.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateToolRequest) (*dto.ToolResponse, error) {
	t, err := uc.get(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	if in.SKU != nil {
		t.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Nombre != nil {
		t.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.NewValidationError("precio", "no puede ser negativo")
		}
		t.Precio = *in.Precio
	}
	if in.Categoria != nil {
		t.Categoria = *in.Categoria
	}
	if in.Proveedor != nil {
		t.Proveedor = *in.Proveedor
	}
	if in.Ubicacion != nil {
		t.Ubicacion = *in.Ubicacion
	}
	t.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

// Delete borrado lógico.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista herramientas activas, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, p dto.PageRequest, estado string) (*dto.ListResponse[dto.ToolResponse], error) {
	if estado != "" && !entity.ValidToolEstado(estado) {
		return nil, domain.NewValidationError("estado", "estado de herramienta desconocido")
	}
	return uc.list(ctx, p, repository.ToolFilter{Estado: estado})
}

// Available herramientas en stock.
func (uc *UseCase) Available(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.ToolResponse], error) {
	return uc.list(ctx, p, repository.ToolFilter{Estado: entity.ToolStock})
}

// Assigned herramientas en uso; employeeID vacío devuelve todas.
func (uc *UseCase) Assigned(ctx context.Context, p dto.PageRequest, employeeID string) (*dto.ListResponse[dto.ToolResponse], error) {
	return uc.list(ctx, p, repository.ToolFilter{Estado: entity.ToolEnUso, AssignedTo: employeeID})
}

func (uc *UseCase) list(ctx context.Context, p dto.PageRequest, f repository.ToolFilter) (*dto.ListResponse[dto.ToolResponse], error) {
	p.Normalize()
	f.ListParams = repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ToolResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toResponse(t))
	}
	return &dto.ListResponse[dto.ToolResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// Assign asigna la herramienta a un empleado activo. Solo desde stock.
func (uc *UseCase) Assign(ctx context.Context, id string, in dto.AssignToolRequest, usuario string) (*dto.ToolResponse, error) {
	emp, err := uc.employees.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.NewValidationError("employee_id", "el empleado no existe")
	}
	if !emp.Activo {
		return nil, fmt.Errorf("%w: el empleado está inactivo", domain.ErrConflict)
	}
	return uc.transition(ctx, id, "assign", func(t *entity.Tool, now time.Time) (tooling.Transition, error) {
		return tooling.PlanAssign(t, emp.ID, in.Observaciones, usuario, now)
	})
}

// Return registra la devolución. Solo desde en_uso.
func (uc *UseCase) Return(ctx context.Context, id string, in dto.ReturnToolRequest, usuario string) (*dto.ToolResponse, error) {
	return uc.transition(ctx, id, "return", func(t *entity.Tool, now time.Time) (tooling.Transition, error) {
		return tooling.PlanReturn(t, in.Estado, in.Observaciones, usuario, now)
	})
}

// RegisterMaintenance pasa la herramienta a mantenimiento desde cualquier estado.
func (uc *UseCase) RegisterMaintenance(ctx context.Context, id string, in dto.MaintenanceRequest, usuario string) (*dto.ToolResponse, error) {
	return uc.transition(ctx, id, "maintenance", func(t *entity.Tool, now time.Time) (tooling.Transition, error) {
		return tooling.PlanMaintenance(t, in.Descripcion, in.Costo, in.ProximoMantenimiento, usuario, now)
	})
}

// Repair reintegra a stock una herramienta dañada, en mantenimiento o en reparación sencilla.
func (uc *UseCase) Repair(ctx context.Context, id string, in dto.RepairToolRequest, usuario string) (*dto.ToolResponse, error) {
	return uc.transition(ctx, id, "repair", func(t *entity.Tool, now time.Time) (tooling.Transition, error) {
		return tooling.PlanRepair(t, in.Observaciones, in.Costo, usuario, now)
	})
}

type planFunc func(t *entity.Tool, now time.Time) (tooling.Transition, error)

// transition lee la herramienta, planea el cambio y lo aplica condicionado al estado leído.
// Si otra escritura cambió el estado en medio, devuelve el error de conflicto del plan.
func (uc *UseCase) transition(ctx context.Context, id, op string, plan planFunc) (*dto.ToolResponse, error) {
	t, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	tr, err := plan(t, uc.now())
	if err != nil {
		return nil, err
	}
	ok, err := uc.repo.ApplyTransition(ctx, id, tr)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.FromContext(ctx, uc.log).Warn().Str("tool_id", id).Str("op", op).Str("from", tr.From).Msg("transición rechazada por cambio concurrente")
		if tr.Conflict != nil {
			return nil, tr.Conflict
		}
		return nil, domain.ErrConflict
	}
	tooling.Apply(t, tr)
	logger.FromContext(ctx, uc.log).Info().Str("tool_id", id).Str("op", op).Str("estado", t.Estado).Msg("transición de herramienta")
	return toResponse(t), nil
}

// History historial newest first. (nil, nil) si no existe.
func (uc *UseCase) History(ctx context.Context, id string) ([]entity.ToolEvent, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	return t.Historial.NewestFirst(), nil
}

// MostUsed herramientas más asignadas en el periodo.
func (uc *UseCase) MostUsed(ctx context.Context, q dto.ToolStatsQuery) ([]tooling.ToolUsage, error) {
	since, err := tooling.PeriodStart(q.Period, uc.now())
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return tooling.MostUsed(all, since, statsLimit(q.Limit)), nil
}

// TopEmployees empleados con más asignaciones en el periodo, con su nombre.
func (uc *UseCase) TopEmployees(ctx context.Context, q dto.ToolStatsQuery) ([]tooling.EmployeeUsage, error) {
	since, err := tooling.PeriodStart(q.Period, uc.now())
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := tooling.TopEmployees(all, since, statsLimit(q.Limit))
	for i := range out {
		emp, err := uc.employees.GetByID(ctx, out[i].EmpleadoID)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			out[i].Nombre = emp.Nombre
		}
	}
	return out, nil
}

// UsageDuration promedio de horas de uso sobre todo el historial.
func (uc *UseCase) UsageDuration(ctx context.Context) (tooling.UsageDurationSummary, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return tooling.UsageDurationSummary{}, err
	}
	return tooling.UsageDuration(all), nil
}

// MaintenanceCost costo de mantenimientos y reparaciones en el periodo.
func (uc *UseCase) MaintenanceCost(ctx context.Context, q dto.ToolStatsQuery) (tooling.MaintenanceCostSummary, error) {
	since, err := tooling.PeriodStart(q.Period, uc.now())
	if err != nil {
		return tooling.MaintenanceCostSummary{Total: decimal.Zero}, err
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return tooling.MaintenanceCostSummary{Total: decimal.Zero}, err
	}
	return tooling.MaintenanceCost(all, since), nil
}

// Export libro xlsx con todas las herramientas activas.
func (uc *UseCase) Export(ctx context.Context) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("tools: exportador no configurado")
	}
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	active := make([]*entity.Tool, 0, len(all))
	for _, t := range all {
		if t.Activa {
			active = append(active, t)
		}
	}
	data, err := uc.exporter.ExportTools(ctx, active)
	if err != nil {
		return nil, "", fmt.Errorf("tools: exportar: %w", err)
	}
	return data, fmt.Sprintf("herramientas-%s.xlsx", uc.now().Format("20060102")), nil
}

func statsLimit(n int) int {
	if n <= 0 {
		return 10
	}
	if n > dto.MaxLimit {
		return dto.MaxLimit
	}
	return n
}

func toResponse(t *entity.Tool) *dto.ToolResponse {
	if t == nil {
		return nil
	}
	return &dto.ToolResponse{
		ID:                   t.ID,
		SKU:                  t.SKU,
		Nombre:               t.Nombre,
		Precio:               t.Precio,
		Categoria:            t.Categoria,
		Proveedor:            t.Proveedor,
		Ubicacion:            t.Ubicacion,
		Estado:               t.Estado,
		AssignedTo:           t.AssignedTo,
		UltimoMantenimiento:  t.UltimoMantenimiento,
		ProximoMantenimiento: t.ProximoMantenimiento,
		Activa:               t.Activa,
		HistorialCount:       t.Historial.Len(),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
