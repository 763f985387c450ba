package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	ListParams
	Categoria string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las cantidades solo cambian por SetQuantity/AdjustQuantity, que anexan al historial
// en la misma sentencia.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update actualiza los campos editables (no cantidad ni historial).
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	// Count cantidad de productos y suma de unidades en inventario.
	Count(ctx context.Context) (count int, totalCantidad int64, err error)
	// SetQuantity fija la cantidad absoluta y anexa entry.
	SetQuantity(ctx context.Context, id string, cantidad int, entry entity.HistoryEntry) (bool, error)
	// AdjustQuantity suma delta (negativo para descontar) solo si el resultado queda >= 0.
	// Si precio no es nil también actualiza el precio unitario. Devuelve false si no hubo fila afectada.
	AdjustQuantity(ctx context.Context, id string, delta int, precio *decimal.Decimal, entry entity.HistoryEntry) (bool, error)
	AppendAssignment(ctx context.Context, id string, a entity.ProductAssignment) error
}
