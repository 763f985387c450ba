package usecase

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
)

// skuAttempts reintentos ante colisión de un SKU autogenerado.
const skuAttempts = 3

// ProductUseCase casos de uso de inventario. La cantidad solo cambia por operaciones
// que anexan historial en la misma sentencia.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   repository.TxRunner
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx repository.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create crea un producto con historial "creacion". Si no llega SKU se genera uno.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, usuario string) (*dto.ProductResponse, error) {
	if err := checkPrice("precio_unitario", in.PrecioUnitario); err != nil {
		return nil, err
	}
	if err := inventory.CheckQuantity(in.Cantidad); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            strings.TrimSpace(in.SKU),
		Nombre:         strings.TrimSpace(in.Nombre),
		Descripcion:    in.Descripcion,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario,
		Categoria:      in.Categoria,
		Estado:         in.Estado,
		Ubicacion:      in.Ubicacion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.Historial = entity.NewLog(inventory.Entry(entity.AccionCreacion,
		fmt.Sprintf("producto creado con %d unidad(es)", p.Cantidad), usuario, now))
	if err := uc.createWithSKU(ctx, p, p.SKU == ""); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) createWithSKU(ctx context.Context, p *entity.Product, generate bool) error {
	if !generate {
		return uc.repo.Create(ctx, p)
	}
	var err error
	for i := 0; i < skuAttempts; i++ {
		p.SKU = inventory.GenerateSKU()
		if err = uc.repo.Create(ctx, p); !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return err
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza los campos editables. Un cambio de cantidad se registra como "ajuste"
// en la misma transacción que el resto de campos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, usuario string) (*dto.ProductResponse, error) {
	if in.PrecioUnitario != nil {
		if err := checkPrice("precio_unitario", *in.PrecioUnitario); err != nil {
			return nil, err
		}
	}
	if in.Cantidad != nil {
		if err := inventory.CheckQuantity(*in.Cantidad); err != nil {
			return nil, err
		}
	}
	found := true
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			found = false
			return nil
		}
		applyProductUpdate(p, in)
		p.UpdatedAt = uc.now()
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		if in.Cantidad == nil || *in.Cantidad == p.Cantidad {
			return nil
		}
		ok, err := r.Products.SetQuantity(ctx, id, *in.Cantidad,
			inventory.AdjustmentEntry(p.Cantidad, *in.Cantidad, usuario, p.UpdatedAt))
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

func applyProductUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Nombre != nil {
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		p.Descripcion = *in.Descripcion
	}
	if in.PrecioUnitario != nil {
		p.PrecioUnitario = *in.PrecioUnitario
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.Estado != nil {
		p.Estado = *in.Estado
	}
	if in.Ubicacion != nil {
		p.Ubicacion = *in.Ubicacion
	}
	if in.UltimoMantenimiento != nil {
		p.UltimoMantenimiento = in.UltimoMantenimiento
	}
	if in.ProximoMantenimiento != nil {
		p.ProximoMantenimiento = in.ProximoMantenimiento
	}
}

// SetQuantity fija la cantidad absoluta (>= 0) con historial "ajuste".
func (uc *ProductUseCase) SetQuantity(ctx context.Context, id string, cantidad int, usuario string) (*dto.ProductResponse, error) {
	if err := inventory.CheckQuantity(cantidad); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	ok, err := uc.repo.SetQuantity(ctx, id, cantidad, inventory.AdjustmentEntry(p.Cantidad, cantidad, usuario, uc.now()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// AddToInventory registra una entrada de mercancía por SKU. Si el SKU existe suma la
// cantidad y recalcula el precio promedio ponderado; si no, crea el producto.
// En ambos casos el historial recibe "ingreso_inventario".
func (uc *ProductUseCase) AddToInventory(ctx context.Context, in dto.AddToInventoryRequest, usuario string) (*dto.ProductResponse, bool, error) {
	if in.Cantidad <= 0 {
		return nil, false, domain.NewValidationError("cantidad", "debe ser mayor que 0")
	}
	if err := checkPrice("precio_unitario", in.PrecioUnitario); err != nil {
		return nil, false, err
	}
	sku := strings.TrimSpace(in.SKU)
	now := uc.now()
	entry := inventory.Entry(entity.AccionIngresoInventario,
		fmt.Sprintf("ingreso de %d unidad(es)", in.Cantidad), usuario, now)

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			precio := inventory.WeightedUnitPrice(existing.Cantidad, existing.PrecioUnitario, in.Cantidad, in.PrecioUnitario)
			ok, err := uc.repo.AdjustQuantity(ctx, existing.ID, in.Cantidad, &precio, entry)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, domain.ErrNotFound
			}
			out, err := uc.GetByID(ctx, existing.ID)
			return out, false, err
		}

		if strings.TrimSpace(in.Nombre) == "" {
			return nil, false, domain.NewValidationError("nombre", "es requerido para crear un producto nuevo")
		}
		categoria := in.Categoria
		if categoria == "" {
			categoria = entity.CategoriaOtro
		}
		p := &entity.Product{
			ID:             uuid.New().String(),
			SKU:            sku,
			Nombre:         strings.TrimSpace(in.Nombre),
			Descripcion:    in.Descripcion,
			Cantidad:       in.Cantidad,
			PrecioUnitario: in.PrecioUnitario,
			Categoria:      categoria,
			Historial:      entity.NewLog(entry),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		err = uc.repo.Create(ctx, p)
		if err == nil {
			return toProductResponse(p), true, nil
		}
		// Otro ingreso creó el mismo SKU entre la consulta y la inserción: sumar en su lugar.
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, err
		}
	}
	return nil, false, domain.ErrConflict
}

// ReturnToInventory devuelve unidades al inventario con historial "devolucion".
func (uc *ProductUseCase) ReturnToInventory(ctx context.Context, id string, in dto.ReturnToInventoryRequest, usuario string) (*dto.ProductResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.NewValidationError("cantidad", "debe ser mayor que 0")
	}
	detalle := fmt.Sprintf("devolución de %d unidad(es)", in.Cantidad)
	if e := strings.TrimSpace(in.Empleado); e != "" {
		detalle += " por " + e
	}
	ok, err := uc.repo.AdjustQuantity(ctx, id, in.Cantidad, nil,
		inventory.Entry(entity.AccionDevolucionProducto, detalle, usuario, uc.now()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// History historial del producto, del más reciente al más antiguo. (nil, nil) si no existe.
func (uc *ProductUseCase) History(ctx context.Context, id string) ([]entity.HistoryEntry, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return p.Historial.NewestFirst(), nil
}

// Count cantidad de productos y suma de unidades.
func (uc *ProductUseCase) Count(ctx context.Context) (*dto.ProductCountResponse, error) {
	n, total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductCountResponse{Count: n, TotalCantidad: total}, nil
}

// List lista productos con paginación, búsqueda y filtro por categoría.
func (uc *ProductUseCase) List(ctx context.Context, p dto.PageRequest, categoria string) (*dto.ListResponse[dto.ProductResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search},
		Categoria:  categoria,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toProductResponse(pr))
	}
	return &dto.ListResponse[dto.ProductResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func checkPrice(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Nombre:               p.Nombre,
		Descripcion:          p.Descripcion,
		Cantidad:             p.Cantidad,
		PrecioUnitario:       p.PrecioUnitario,
		Categoria:            p.Categoria,
		Estado:               p.Estado,
		Ubicacion:            p.Ubicacion,
		Asignaciones:         p.Asignaciones,
		UltimoMantenimiento:  p.UltimoMantenimiento,
		ProximoMantenimiento: p.ProximoMantenimiento,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
