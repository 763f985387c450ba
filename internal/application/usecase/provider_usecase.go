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

// ProviderUseCase casos de uso CRUD para proveedores.
type ProviderUseCase struct {
	repo repository.ProviderRepository
	now  func() time.Time
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, now: time.Now}
}

func applyProvider(p *entity.Provider, in dto.ProviderRequest) {
	p.Nombre = strings.TrimSpace(in.Nombre)
	p.Empresa = strings.TrimSpace(in.Empresa)
	p.Direccion = strings.TrimSpace(in.Direccion)
	p.Telefono = strings.TrimSpace(in.Telefono)
	p.NIT = strings.TrimSpace(in.NIT)
	p.MetodoPago = in.MetodoPago
}

// Create crea un proveedor.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	now := uc.now()
	p := &entity.Provider{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	applyProvider(p, in)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// Update reemplaza los datos del proveedor.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	applyProvider(p, in)
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// Delete elimina un proveedor.
func (uc *ProviderUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proveedores.
func (uc *ProviderUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.ProviderResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, *toProviderResponse(pr))
	}
	return &dto.ListResponse[dto.ProviderResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	if p == nil {
		return nil
	}
	return &dto.ProviderResponse{
		ID:         p.ID,
		Nombre:     p.Nombre,
		Empresa:    p.Empresa,
		Direccion:  p.Direccion,
		Telefono:   p.Telefono,
		NIT:        p.NIT,
		MetodoPago: p.MetodoPago,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
