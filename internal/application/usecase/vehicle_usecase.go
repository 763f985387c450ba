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

// VehicleUseCase CRUD de vehículos, asignación de empleado y de productos.
type VehicleUseCase struct {
	repo      repository.VehicleRepository
	employees repository.EmployeeRepository
	txRunner  repository.TxRunner
	now       func() time.Time
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, employees repository.EmployeeRepository, txRunner repository.TxRunner) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, employees: employees, txRunner: txRunner, now: time.Now}
}

func checkPlaca(raw string) (string, error) {
	placa := entity.NormalizePlaca(raw)
	if !entity.ValidPlaca(placa) {
		return "", domain.NewValidationError("placa", "formato inválido (ej. ABC123, ABC-123, ABC12D)")
	}
	return placa, nil
}

// Create registra un vehículo; estado inicial cotizacion si no se indica.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	placa, err := checkPlaca(in.Placa)
	if err != nil {
		return nil, err
	}
	if !entity.ValidTipoVehiculo(in.TipoVehiculo) {
		return nil, domain.NewValidationError("tipo_vehiculo", "debe ser Trailer, Van o Botellero")
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.VehiculoCotizacion
	}
	if !entity.ValidEstadoVehiculo(estado) {
		return nil, domain.NewValidationError("estado", "debe ser cotizacion, mantenimiento o reparado")
	}
	now := uc.now()
	v := &entity.Vehicle{
		ID:           uuid.New().String(),
		Placa:        placa,
		Compania:     strings.TrimSpace(in.Compania),
		TipoVehiculo: in.TipoVehiculo,
		Estado:       estado,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// GetByID obtiene un vehículo por ID.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// Update aplica cambios parciales.
func (uc *VehicleUseCase) Update(ctx context.Context, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if in.Placa != nil {
		if v.Placa, err = checkPlaca(*in.Placa); err != nil {
			return nil, err
		}
	}
	if in.Compania != nil {
		v.Compania = strings.TrimSpace(*in.Compania)
	}
	if in.TipoVehiculo != nil {
		if !entity.ValidTipoVehiculo(*in.TipoVehiculo) {
			return nil, domain.NewValidationError("tipo_vehiculo", "debe ser Trailer, Van o Botellero")
		}
		v.TipoVehiculo = *in.TipoVehiculo
	}
	if in.Estado != nil {
		if !entity.ValidEstadoVehiculo(*in.Estado) {
			return nil, domain.NewValidationError("estado", "debe ser cotizacion, mantenimiento o reparado")
		}
		v.Estado = *in.Estado
	}
	v.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVehicleResponse(v), nil
}

// Delete elimina un vehículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista vehículos con filtros por estado y tipo.
func (uc *VehicleUseCase) List(ctx context.Context, p dto.PageRequest, estado, tipo string) (*dto.ListResponse[dto.VehicleResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.VehicleFilter{
		ListParams: repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search},
		Estado:     estado,
		Tipo:       tipo,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return &dto.ListResponse[dto.VehicleResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

// AssignEmployee fija el empleado a cargo del vehículo; nil lo libera.
func (uc *VehicleUseCase) AssignEmployee(ctx context.Context, id string, in dto.AssignEmployeeRequest) (*dto.VehicleResponse, error) {
	var empID *string
	if in.EmployeeID != nil && strings.TrimSpace(*in.EmployeeID) != "" {
		emp, err := uc.employees.GetByID(ctx, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.NewValidationError("employee_id", "el empleado no existe")
		}
		empID = &emp.ID
	}
	ok, err := uc.repo.AssignEmployee(ctx, id, empID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// UpdateStatus cambia el estado del vehículo.
func (uc *VehicleUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateVehicleStatusRequest) (*dto.VehicleResponse, error) {
	if !entity.ValidEstadoVehiculo(in.Estado) {
		return nil, domain.NewValidationError("estado", "debe ser cotizacion, mantenimiento o reparado")
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, in.Estado)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return uc.GetByID(ctx, id)
}

// AssignProduct descuenta unidades del inventario y las registra en el vehículo, en una transacción.
func (uc *VehicleUseCase) AssignProduct(ctx context.Context, id string, in dto.AssignProductRequest, usuario string) (*dto.VehicleResponse, error) {
	now := uc.now()
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		v, err := r.Vehicles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
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
		entry := inventory.Entry(entity.AccionAsignacionVehiculo,
			fmt.Sprintf("%d unidad(es) asignadas al vehículo %s", in.Cantidad, v.Placa), usuario, now)
		ok, err := r.Products.AdjustQuantity(ctx, p.ID, -in.Cantidad, nil, entry)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		_, err = r.Vehicles.AppendProduct(ctx, v.ID, entity.AssignedProduct{
			ProductID:   p.ID,
			Nombre:      p.Nombre,
			Cantidad:    in.Cantidad,
			AsignadoPor: usuario,
			Fecha:       now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	productos := v.Productos
	if productos == nil {
		productos = []entity.AssignedProduct{}
	}
	return &dto.VehicleResponse{
		ID:               v.ID,
		Placa:            v.Placa,
		Compania:         v.Compania,
		TipoVehiculo:     v.TipoVehiculo,
		Estado:           v.Estado,
		EmpleadoAsignado: v.EmpleadoAsignado,
		Productos:        productos,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
