// Package tooling contiene la máquina de estados de las herramientas y las
// estadísticas derivadas de su historial.
//
//	stock ──assign──▶ en_uso ──return──▶ {stock, dañada, mantenimiento, reparacion_sencilla}
//	cualquiera ──maintenance──▶ mantenimiento
//	{dañada, mantenimiento, reparacion_sencilla} ──repair──▶ stock
package tooling

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Transition cambio de estado planeado sobre una herramienta. La persistencia lo aplica
// en una sola sentencia condicionada a From; si From es vacío no hay guarda de estado.
// Conflict es el error a devolver cuando la guarda no se cumple al momento de escribir.
type Transition struct {
	From                 string
	To                   string
	AssignedTo           *string
	Event                entity.ToolEvent
	UltimoMantenimiento  *time.Time
	ProximoMantenimiento *time.Time
	Conflict             error
}

// ReturnStates estados válidos al devolver una herramienta.
var ReturnStates = []string{entity.ToolStock, entity.ToolDanada, entity.ToolMantenimiento, entity.ToolReparacionSencilla}

func isReturnState(e string) bool {
	for _, s := range ReturnStates {
		if s == e {
			return true
		}
	}
	return false
}

// PlanAssign asignación a un empleado; solo desde stock.
func PlanAssign(t *entity.Tool, employeeID, observaciones, usuario string, now time.Time) (Transition, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Transition{}, domain.NewValidationError("employee_id", "es requerido")
	}
	if !t.Activa || t.Estado != entity.ToolStock {
		return Transition{}, fmt.Errorf("%w: estado actual %q", domain.ErrToolNotAvailable, t.Estado)
	}
	emp := employeeID
	return Transition{
		From:       entity.ToolStock,
		To:         entity.ToolEnUso,
		AssignedTo: &emp,
		Event: entity.ToolEvent{
			Accion:         entity.ToolAccionAsignacion,
			Fecha:          now,
			EmpleadoID:     employeeID,
			Observaciones:  observaciones,
			Costo:          decimal.Zero,
			EstadoAnterior: t.Estado,
			EstadoNuevo:    entity.ToolEnUso,
			Usuario:        usuario,
		},
		Conflict: domain.ErrToolNotAvailable,
	}, nil
}

// PlanReturn devolución; solo desde en_uso. estado vacío equivale a stock.
func PlanReturn(t *entity.Tool, estado, observaciones, usuario string, now time.Time) (Transition, error) {
	if estado == "" {
		estado = entity.ToolStock
	}
	if !isReturnState(estado) {
		return Transition{}, domain.NewValidationError("estado", "debe ser uno de: "+strings.Join(ReturnStates, ", "))
	}
	if t.Estado != entity.ToolEnUso {
		return Transition{}, fmt.Errorf("%w: estado actual %q", domain.ErrToolNotInUse, t.Estado)
	}
	var emp string
	if t.AssignedTo != nil {
		emp = *t.AssignedTo
	}
	return Transition{
		From: entity.ToolEnUso,
		To:   estado,
		Event: entity.ToolEvent{
			Accion:         entity.ToolAccionDevolucion,
			Fecha:          now,
			EmpleadoID:     emp,
			Observaciones:  observaciones,
			Costo:          decimal.Zero,
			EstadoAnterior: entity.ToolEnUso,
			EstadoNuevo:    estado,
			Usuario:        usuario,
		},
		Conflict: domain.ErrToolNotInUse,
	}, nil
}

// PlanMaintenance mantenimiento; legal desde cualquier estado. Libera la asignación.
func PlanMaintenance(t *entity.Tool, descripcion string, costo decimal.Decimal, proximo *time.Time, usuario string, now time.Time) (Transition, error) {
	ve := &domain.ValidationError{}
	if costo.IsNegative() {
		ve.Add("costo", "no puede ser negativo")
	}
	if proximo != nil && proximo.Before(now) {
		ve.Add("proximo_mantenimiento", "debe ser una fecha futura")
	}
	if err := ve.OrNil(); err != nil {
		return Transition{}, err
	}
	var emp string
	if t.AssignedTo != nil {
		emp = *t.AssignedTo
	}
	ultimo := now
	return Transition{
		To: entity.ToolMantenimiento,
		Event: entity.ToolEvent{
			Accion:         entity.ToolAccionMantenimiento,
			Fecha:          now,
			EmpleadoID:     emp,
			Observaciones:  descripcion,
			Costo:          costo,
			EstadoAnterior: t.Estado,
			EstadoNuevo:    entity.ToolMantenimiento,
			Usuario:        usuario,
		},
		UltimoMantenimiento:  &ultimo,
		ProximoMantenimiento: proximo,
	}, nil
}

// PlanRepair reintegra a stock una herramienta dañada o en mantenimiento.
func PlanRepair(t *entity.Tool, observaciones string, costo decimal.Decimal, usuario string, now time.Time) (Transition, error) {
	if costo.IsNegative() {
		return Transition{}, domain.NewValidationError("costo", "no puede ser negativo")
	}
	switch t.Estado {
	case entity.ToolDanada, entity.ToolMantenimiento, entity.ToolReparacionSencilla:
	default:
		return Transition{}, fmt.Errorf("%w: no se puede reparar una herramienta en estado %q", domain.ErrConflict, t.Estado)
	}
	return Transition{
		From: t.Estado,
		To:   entity.ToolStock,
		Event: entity.ToolEvent{
			Accion:         entity.ToolAccionReparacion,
			Fecha:          now,
			Observaciones:  observaciones,
			Costo:          costo,
			EstadoAnterior: t.Estado,
			EstadoNuevo:    entity.ToolStock,
			Usuario:        usuario,
		},
		Conflict: domain.ErrConflict,
	}, nil
}

// Apply refleja tr sobre t en memoria (mismo efecto que la sentencia en la DB).
func Apply(t *entity.Tool, tr Transition) {
	t.Estado = tr.To
	t.AssignedTo = tr.AssignedTo
	t.Historial = t.Historial.Append(tr.Event)
	if tr.UltimoMantenimiento != nil {
		t.UltimoMantenimiento = tr.UltimoMantenimiento
	}
	if tr.ProximoMantenimiento != nil {
		t.ProximoMantenimiento = tr.ProximoMantenimiento
	}
	t.UpdatedAt = tr.Event.Fecha
}
