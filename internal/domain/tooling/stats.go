package tooling

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Periodos aceptados por las estadísticas.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// PeriodStart inicio de la ventana móvil que termina en now. Vacío equivale a month.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth, "":
		return now.AddDate(0, -1, 0), nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, domain.NewValidationError("period", "debe ser week, month o year")
}

// ToolUsage cantidad de asignaciones de una herramienta.
type ToolUsage struct {
	ToolID string `json:"tool_id"`
	SKU    string `json:"sku"`
	Nombre string `json:"nombre"`
	Usos   int    `json:"usos"`
}

// EmployeeUsage cantidad de asignaciones recibidas por un empleado.
// Nombre lo completa la capa de aplicación.
type EmployeeUsage struct {
	EmpleadoID string `json:"empleado_id"`
	Nombre     string `json:"nombre,omitempty"`
	Usos       int    `json:"usos"`
}

// ToolDuration duración promedio de uso de una herramienta.
type ToolDuration struct {
	ToolID        string  `json:"tool_id"`
	Nombre        string  `json:"nombre"`
	Usos          int     `json:"usos"`
	PromedioHoras float64 `json:"promedio_horas"`
}

// UsageDurationSummary promedio global y por herramienta.
type UsageDurationSummary struct {
	PromedioHoras  float64        `json:"promedio_horas"`
	Usos           int            `json:"usos"`
	PorHerramienta []ToolDuration `json:"por_herramienta"`
}

// ToolCost costo de mantenimiento acumulado por herramienta.
type ToolCost struct {
	ToolID         string          `json:"tool_id"`
	Nombre         string          `json:"nombre"`
	Mantenimientos int             `json:"mantenimientos"`
	Costo          decimal.Decimal `json:"costo"`
}

// MaintenanceCostSummary costo total de mantenimiento en el periodo.
type MaintenanceCostSummary struct {
	Total          decimal.Decimal `json:"total"`
	Mantenimientos int             `json:"mantenimientos"`
	PorHerramienta []ToolCost      `json:"por_herramienta"`
}

// MostUsed herramientas con más asignaciones desde since, de mayor a menor.
func MostUsed(tools []*entity.Tool, since time.Time, limit int) []ToolUsage {
	out := []ToolUsage{}
	for _, t := range tools {
		n := 0
		for _, e := range t.Historial.Entries() {
			if e.Accion == entity.ToolAccionAsignacion && !e.Fecha.Before(since) {
				n++
			}
		}
		if n > 0 {
			out = append(out, ToolUsage{ToolID: t.ID, SKU: t.SKU, Nombre: t.Nombre, Usos: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Usos != out[j].Usos {
			return out[i].Usos > out[j].Usos
		}
		return out[i].Nombre < out[j].Nombre
	})
	return truncate(out, limit)
}

// TopEmployees empleados con más asignaciones desde since.
func TopEmployees(tools []*entity.Tool, since time.Time, limit int) []EmployeeUsage {
	counts := map[string]int{}
	for _, t := range tools {
		for _, e := range t.Historial.Entries() {
			if e.Accion == entity.ToolAccionAsignacion && e.EmpleadoID != "" && !e.Fecha.Before(since) {
				counts[e.EmpleadoID]++
			}
		}
	}
	out := make([]EmployeeUsage, 0, len(counts))
	for id, n := range counts {
		out = append(out, EmployeeUsage{EmpleadoID: id, Usos: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Usos != out[j].Usos {
			return out[i].Usos > out[j].Usos
		}
		return out[i].EmpleadoID < out[j].EmpleadoID
	})
	return truncate(out, limit)
}

// UsageDuration empareja cada asignacion con la devolucion siguiente y promedia las horas.
// Una asignación sin devolución (herramienta aún en uso) no cuenta.
func UsageDuration(tools []*entity.Tool) UsageDurationSummary {
	sum := UsageDurationSummary{PorHerramienta: []ToolDuration{}}
	var totalHours float64
	for _, t := range tools {
		var start *time.Time
		var hours float64
		n := 0
		for _, e := range t.Historial.Entries() {
			switch e.Accion {
			case entity.ToolAccionAsignacion:
				f := e.Fecha
				start = &f
			case entity.ToolAccionDevolucion:
				if start != nil {
					hours += e.Fecha.Sub(*start).Hours()
					n++
					start = nil
				}
			}
		}
		if n == 0 {
			continue
		}
		sum.PorHerramienta = append(sum.PorHerramienta, ToolDuration{
			ToolID: t.ID, Nombre: t.Nombre, Usos: n, PromedioHoras: round2(hours / float64(n)),
		})
		totalHours += hours
		sum.Usos += n
	}
	if sum.Usos > 0 {
		sum.PromedioHoras = round2(totalHours / float64(sum.Usos))
	}
	sort.SliceStable(sum.PorHerramienta, func(i, j int) bool {
		return sum.PorHerramienta[i].PromedioHoras > sum.PorHerramienta[j].PromedioHoras
	})
	return sum
}

// MaintenanceCost suma el costo de los eventos de mantenimiento y reparación desde since.
func MaintenanceCost(tools []*entity.Tool, since time.Time) MaintenanceCostSummary {
	sum := MaintenanceCostSummary{Total: decimal.Zero, PorHerramienta: []ToolCost{}}
	for _, t := range tools {
		tc := ToolCost{ToolID: t.ID, Nombre: t.Nombre, Costo: decimal.Zero}
		for _, e := range t.Historial.Entries() {
			if e.Accion != entity.ToolAccionMantenimiento && e.Accion != entity.ToolAccionReparacion {
				continue
			}
			if e.Fecha.Before(since) {
				continue
			}
			tc.Mantenimientos++
			tc.Costo = tc.Costo.Add(e.Costo)
		}
		if tc.Mantenimientos == 0 {
			continue
		}
		sum.PorHerramienta = append(sum.PorHerramienta, tc)
		sum.Mantenimientos += tc.Mantenimientos
		sum.Total = sum.Total.Add(tc.Costo)
	}
	sort.SliceStable(sum.PorHerramienta, func(i, j int) bool {
		return sum.PorHerramienta[i].Costo.GreaterThan(sum.PorHerramienta[j].Costo)
	})
	return sum
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

func round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}
