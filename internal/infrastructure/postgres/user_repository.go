package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nombre, email, password_hash, role, activo, last_login,
	COALESCE(reset_token_hash, ''), reset_token_expira, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(s scanner) (*entity.User, error) {
	var u entity.User
	err := s.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Role, &u.Activo, &u.LastLogin,
		&u.ResetTokenHash, &u.ResetTokenExpira, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create persiste un usuario nuevo. Email duplicado → domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, nombre, email, password_hash, role, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Nombre, u.Email, u.PasswordHash, u.Role, u.Activo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas (incluye el hash para login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `lower(email) = lower($1)`, email)
}

// GetByResetTokenHash obtiene el usuario dueño de un token de recuperación.
func (r *UserRepo) GetByResetTokenHash(ctx context.Context, hash string) (*entity.User, error) {
	return r.getOne(ctx, `reset_token_hash = $1`, hash)
}

// Update persiste los campos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		UPDATE users SET nombre = $2, email = $3, password_hash = $4, role = $5, activo = $6,
			reset_token_hash = $7, reset_token_expira = $8, updated_at = $9
		WHERE id = $1`,
		u.ID, u.Nombre, u.Email, u.PasswordHash, u.Role, u.Activo,
		nullIfEmpty(u.ResetTokenHash), u.ResetTokenExpira, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdateLastLogin registra el último inicio de sesión exitoso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// List lista usuarios por nombre o email.
func (r *UserRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.User, int, error) {
	const where = `WHERE ($1 = '' OR nombre ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`
	total, err := count(ctx, r.q, `SELECT count(*) FROM users `+where, p.Search)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users `+where+`
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, p.Search, limitArg(p.Limit), p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}
