// Package inventory reglas de dominio sobre cantidades y precios del inventario.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// GenerateSKU genera un SKU "SKU-XXXXXXXX" cuando el cliente no envía uno.
func GenerateSKU() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SKU-" + strings.ToUpper(id[:8])
}

// CheckWithdrawal valida una salida de cantidad unidades cuando hay disponible en stock.
func CheckWithdrawal(disponible, cantidad int) error {
	if cantidad <= 0 {
		return domain.NewValidationError("cantidad", "debe ser mayor que 0")
	}
	if cantidad > disponible {
		return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, disponible, cantidad)
	}
	return nil
}

// CheckQuantity valida una cantidad absoluta (ajuste manual).
func CheckQuantity(cantidad int) error {
	if cantidad < 0 {
		return domain.NewValidationError("cantidad", "no puede ser negativa")
	}
	return nil
}

// WeightedUnitPrice precio unitario promedio ponderado tras una entrada de inventario:
// ((stock × precio) + (entrada × precioEntrada)) / (stock + entrada).
// Si el precio de entrada es cero se conserva el precio actual.
func WeightedUnitPrice(stock int, precio decimal.Decimal, entrada int, precioEntrada decimal.Decimal) decimal.Decimal {
	if precioEntrada.IsZero() {
		return precio
	}
	st, in := decimal.NewFromInt(int64(stock)), decimal.NewFromInt(int64(entrada))
	sum := st.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return precioEntrada
	}
	return st.Mul(precio).Add(in.Mul(precioEntrada)).Div(sum).Round(2)
}

// Entry construye una entrada de historial.
func Entry(accion, detalles, usuario string, now time.Time) entity.HistoryEntry {
	return entity.HistoryEntry{Accion: accion, Detalles: detalles, Fecha: now, Usuario: usuario}
}

// AdjustmentEntry entrada "ajuste" que describe el cambio de cantidad.
func AdjustmentEntry(anterior, nueva int, usuario string, now time.Time) entity.HistoryEntry {
	return Entry(entity.AccionAjuste, fmt.Sprintf("cantidad %d → %d", anterior, nueva), usuario, now)
}
