package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*entity.User, error)
	// Update persiste nombre, email, rol, activo, hash y token de recuperación.
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, p ListParams) ([]*entity.User, int, error)
}
