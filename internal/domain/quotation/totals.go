// Package quotation contiene las reglas puras de la cotización: folio, normalización
// de líneas y cálculo de subtotal, IVA y total.
package quotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FolioPrefix prefijo de todos los folios.
const FolioPrefix = "COT-"

// IVARate tarifa general de IVA en Colombia.
var IVARate = decimal.NewFromFloat(0.19)

// FormatFolio construye el folio con relleno de 4 dígitos: 1 → "COT-0001".
func FormatFolio(n int64) string {
	return fmt.Sprintf("%s%04d", FolioPrefix, n)
}

// ParseFolio extrae el número de un folio. Devuelve 0 si el formato no corresponde.
func ParseFolio(folio string) int64 {
	n, err := strconv.ParseInt(strings.TrimPrefix(folio, FolioPrefix), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Totals resultado del cálculo.
type Totals struct {
	Subtotal decimal.Decimal
	IVA      decimal.Decimal
	Total    decimal.Decimal
}

// Compute suma cantidad × precio de las líneas no eliminadas:
// subtotal = round2(Σ), iva = round2(subtotal × 0.19), total = subtotal + iva.
func Compute(lines []entity.QuotationLine) Totals {
	sum := decimal.Zero
	for _, l := range lines {
		if l.Eliminado {
			continue
		}
		sum = sum.Add(l.Cantidad.Mul(l.PrecioUnitario))
	}
	subtotal := sum.Round(2)
	iva := subtotal.Mul(IVARate).Round(2)
	return Totals{Subtotal: subtotal, IVA: iva, Total: subtotal.Add(iva)}
}

// Recalculate renormaliza cada línea (total, estado) y recalcula los derivados de q.
// Ignora cualquier total enviado por el cliente.
func Recalculate(q *entity.Quotation) {
	for i := range q.Productos {
		normalizeLine(&q.Productos[i])
	}
	t := Compute(q.Productos)
	q.Subtotal, q.IVA, q.Total = t.Subtotal, t.IVA, t.Total
}

func normalizeLine(l *entity.QuotationLine) {
	l.Total = l.Cantidad.Mul(l.PrecioUnitario).Round(2)
	switch {
	case l.Eliminado:
		l.Estado = entity.LineaEliminado
	case l.Estado == entity.LineaEliminado:
		l.Eliminado = true
	case l.Aprobado:
		l.Estado = entity.LineaAprobado
	case l.Estado == entity.LineaAprobado:
		l.Aprobado = true
	case l.Estado == "":
		l.Estado = entity.LineaPendiente
	}
}

// ValidateLines verifica que haya al menos una línea y que cada una tenga nombre,
// cantidad > 0 y precio unitario >= 0.
func ValidateLines(lines []entity.QuotationLine) error {
	ve := &domain.ValidationError{}
	if len(lines) == 0 {
		ve.Add("productos", "debe incluir al menos un producto")
		return ve
	}
	for i, l := range lines {
		p := fmt.Sprintf("productos[%d]", i)
		if strings.TrimSpace(l.Nombre) == "" {
			ve.Add(p+".nombre", "es requerido")
		}
		if !l.Cantidad.GreaterThan(decimal.Zero) {
			ve.Add(p+".cantidad", "debe ser mayor que 0")
		}
		if l.PrecioUnitario.LessThan(decimal.Zero) {
			ve.Add(p+".precio_unitario", "no puede ser negativo")
		}
		if l.Estado != "" && !entity.ValidEstadoLinea(l.Estado) {
			ve.Add(p+".estado", "valor inválido")
		}
	}
	return ve.OrNil()
}

// AssignLineIDs da un identificador estable a las líneas que no lo tienen (0),
// continuando desde el mayor existente. Rechaza identificadores repetidos.
func AssignLineIDs(lines []entity.QuotationLine) error {
	maxID := 0
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		if l.LineID == 0 {
			continue
		}
		if l.LineID < 0 || seen[l.LineID] {
			return domain.NewValidationError("productos.line_id", fmt.Sprintf("identificador inválido o repetido: %d", l.LineID))
		}
		seen[l.LineID] = true
		if l.LineID > maxID {
			maxID = l.LineID
		}
	}
	for i := range lines {
		if lines[i].LineID == 0 {
			maxID++
			lines[i].LineID = maxID
		}
	}
	return nil
}

// LinePatch cambio parcial sobre una línea, direccionada por LineID. Con LineID en cero
// se usa Index, la posición de la línea en la cotización.
type LinePatch struct {
	LineID    int
	Index     *int
	Estado    *string
	Aprobado  *bool
	Eliminado *bool
}

func resolveLine(byID map[int]int, n int, p LinePatch) (int, error) {
	if p.LineID > 0 {
		i, ok := byID[p.LineID]
		if !ok {
			return 0, fmt.Errorf("%w: line_id %d", domain.ErrQuotationLineNotFound, p.LineID)
		}
		return i, nil
	}
	if p.Index == nil {
		return 0, fmt.Errorf("%w: falta line_id o index", domain.ErrQuotationLineNotFound)
	}
	if *p.Index < 0 || *p.Index >= n {
		return 0, fmt.Errorf("%w: index %d", domain.ErrQuotationLineNotFound, *p.Index)
	}
	return *p.Index, nil
}

// ApplyPatches aplica los cambios a las líneas de q y recalcula los totales.
// Si alguna línea no existe, q no se modifica.
func ApplyPatches(q *entity.Quotation, patches []LinePatch) error {
	byID := make(map[int]int, len(q.Productos))
	for i, l := range q.Productos {
		byID[l.LineID] = i
	}
	pos := make([]int, len(patches))
	for n, p := range patches {
		i, err := resolveLine(byID, len(q.Productos), p)
		if err != nil {
			return err
		}
		if p.Estado != nil && !entity.ValidEstadoLinea(*p.Estado) {
			return domain.NewValidationError("estado", "valor inválido")
		}
		pos[n] = i
	}
	for n, p := range patches {
		l := &q.Productos[pos[n]]
		if p.Estado != nil {
			l.Estado = *p.Estado
			l.Eliminado = *p.Estado == entity.LineaEliminado
			l.Aprobado = *p.Estado == entity.LineaAprobado
		}
		if p.Aprobado != nil {
			l.Aprobado = *p.Aprobado
			if !l.Aprobado && l.Estado == entity.LineaAprobado {
				l.Estado = entity.LineaPendiente
			}
		}
		if p.Eliminado != nil {
			l.Eliminado = *p.Eliminado
			if !l.Eliminado && l.Estado == entity.LineaEliminado {
				l.Estado = entity.LineaPendiente
			}
		}
	}
	Recalculate(q)
	return nil
}
