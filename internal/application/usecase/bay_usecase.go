package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// BayUseCase casos de uso CRUD para bahías.
type BayUseCase struct {
	repo repository.BayRepository
	now  func() time.Time
}

// NewBayUseCase construye el caso de uso.
func NewBayUseCase(repo repository.BayRepository) *BayUseCase {
	return &BayUseCase{repo: repo, now: time.Now}
}

func normalizeBayVehicles(in []entity.BayVehicle) []entity.BayVehicle {
	out := make([]entity.BayVehicle, 0, len(in))
	for _, v := range in {
		v.Placa = entity.NormalizePlaca(v.Placa)
		if v.Productos == nil {
			v.Productos = []entity.BayProduct{}
		}
		out = append(out, v)
	}
	return out
}

// Create crea una nueva bahía.
func (uc *BayUseCase) Create(ctx context.Context, in dto.BayRequest) (*dto.BayResponse, error) {
	now := uc.now()
	b := &entity.Bay{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Vehiculos: normalizeBayVehicles(in.Vehiculos),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBayResponse(b), nil
}

// GetByID obtiene una bahía por ID.
func (uc *BayUseCase) GetByID(ctx context.Context, id string) (*dto.BayResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBayResponse(b), nil
}

// Update reemplaza nombre y ocupación.
func (uc *BayUseCase) Update(ctx context.Context, id string, in dto.BayRequest) (*dto.BayResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	b.Nombre = strings.TrimSpace(in.Nombre)
	b.Vehiculos = normalizeBayVehicles(in.Vehiculos)
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBayResponse(b), nil
}

// Delete elimina una bahía.
func (uc *BayUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bahías.
func (uc *BayUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.BayResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BayResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBayResponse(b))
	}
	return &dto.ListResponse[dto.BayResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

func toBayResponse(b *entity.Bay) *dto.BayResponse {
	if b == nil {
		return nil
	}
	vehiculos := b.Vehiculos
	if vehiculos == nil {
		vehiculos = []entity.BayVehicle{}
	}
	return &dto.BayResponse{
		ID:        b.ID,
		Nombre:    b.Nombre,
		Vehiculos: vehiculos,
		Ocupada:   b.Ocupada(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
