package usecase

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UserUseCase consultas administrativas sobre usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación y búsqueda por nombre o email.
func (uc *UserUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	p.Normalize()
	list, total, err := uc.repo.List(ctx, repository.ListParams{Limit: p.Limit, Offset: p.Offset(), Search: p.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Pagination: dto.NewPagination(p, total)}, nil
}
