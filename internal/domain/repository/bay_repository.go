package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// BayRepository puerto de persistencia para Bay.
type BayRepository interface {
	Create(ctx context.Context, b *entity.Bay) error
	GetByID(ctx context.Context, id string) (*entity.Bay, error)
	Update(ctx context.Context, b *entity.Bay) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, p ListParams) ([]*entity.Bay, int, error)
}

// ProviderRepository puerto de persistencia para Provider.
type ProviderRepository interface {
	Create(ctx context.Context, p *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	Update(ctx context.Context, p *entity.Provider) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, p ListParams) ([]*entity.Provider, int, error)
}
