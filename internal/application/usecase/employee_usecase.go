package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados más la entrega de productos y la asignación de vehículos.
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	vehicles repository.VehicleRepository
	txRunner repository.TxRunner
	now      func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, vehicles repository.VehicleRepository, txRunner repository.TxRunner) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, vehicles: vehicles, txRunner: txRunner, now: time.Now}
}

// Create crea un empleado; activo por defecto.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := uc.now()
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	e := &entity.Employee{
		ID:              uuid.New().String(),
		Nombre:          strings.TrimSpace(in.Nombre),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Telefono:        strings.TrimSpace(in.Telefono),
		Cargo:           strings.TrimSpace(in.Cargo),
		FechaNacimiento: in.FechaNacimiento,
		Activo:          activo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Update aplica cambios parciales.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		e.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Telefono != nil {
		e.Telefono = *in.Telefono
	}
	if in.Cargo != nil {
		e.Cargo = *in.Cargo
	}
	if in.FechaNacimiento != nil {
		e.FechaNacimiento = in.FechaNacimiento
	}
	if in.Activo != nil {
		e.Activo = *in.Activo
	}
	e.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// Delete elimina un empleado. Si tiene herramientas en uso o vehículos asignados
// devuelve ErrEmployeeInUse y no borra nada.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	inUse, err := uc.repo.HasAssignments(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrEmployeeInUse
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empleados con paginación y búsqueda.
func (uc *EmployeeUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.EmployeeResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.ListResponse[dto.EmployeeResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// DeliverProduct entrega unidades de un producto a un empleado en una transacción:
// descuento condicionado del stock + historial "entrega" + registro en el empleado.
// Si la cantidad supera el stock no se modifica nada (ErrInsufficientStock).
func (uc *EmployeeUseCase) DeliverProduct(ctx context.Context, employeeID string, in dto.DeliverProductRequest, usuario string) (*dto.EmployeeResponse, error) {
	now := uc.now()
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		emp, err := r.Employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp == nil {
			return domain.ErrNotFound
		}
		if !emp.Activo {
			return fmt.Errorf("%w: el empleado está inactivo", domain.ErrConflict)
		}
		p, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewValidationError("product_id", "el producto no existe")
		}
		if err := inventory.CheckWithdrawal(p.Cantidad, in.Cantidad); err != nil {
			return err
		}
		entry := inventory.Entry(entity.AccionEntrega,
			fmt.Sprintf("%d unidad(es) entregadas a %s", in.Cantidad, emp.Nombre), usuario, now)
		ok, err := r.Products.AdjustQuantity(ctx, p.ID, -in.Cantidad, nil, entry)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		if p.Categoria == entity.CategoriaHerramienta {
			a := entity.ProductAssignment{EmpleadoID: emp.ID, EmpleadoNombre: emp.Nombre, Cantidad: in.Cantidad, Fecha: now}
			if err := r.Products.AppendAssignment(ctx, p.ID, a); err != nil {
				return err
			}
		}
		d := entity.Delivery{ProductID: p.ID, ProductName: p.Nombre, Cantidad: in.Cantidad, Fecha: now}
		ok, err = r.Employees.AppendDelivery(ctx, emp.ID, d)
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
	return uc.GetByID(ctx, employeeID)
}

// AssignVehicle asigna el vehículo al empleado (reemplaza la asignación anterior del vehículo).
func (uc *EmployeeUseCase) AssignVehicle(ctx context.Context, employeeID string, in dto.AssignVehicleRequest) (*dto.VehicleResponse, error) {
	emp, err := uc.repo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.vehicles.AssignEmployee(ctx, in.VehiculoID, &emp.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("vehiculo_id", "el vehículo no existe")
	}
	v, err := uc.vehicles.GetByID(ctx, in.VehiculoID)
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	entregas := e.Entregas
	if entregas == nil {
		entregas = []entity.Delivery{}
	}
	return &dto.EmployeeResponse{
		ID:              e.ID,
		Nombre:          e.Nombre,
		Email:           e.Email,
		Telefono:        e.Telefono,
		Cargo:           e.Cargo,
		FechaNacimiento: e.FechaNacimiento,
		Activo:          e.Activo,
		Entregas:        entregas,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
