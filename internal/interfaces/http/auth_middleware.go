package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUserName = "user_name"
)

// UserLoader carga el usuario del token; lo implementa repository.UserRepository.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, recarga el usuario y deja id, rol y nombre en c.Locals.
// El rol se toma de la base de datos, no del token: un cambio de rol o una desactivación
// aplican desde la siguiente petición.
func AuthMiddleware(jwtSecret string, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return fail(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "el token expiró, inicie sesión de nuevo")
			}
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido")
		}
		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fail(c, fiber.StatusUnauthorized, "USER_NOT_FOUND", "el usuario del token no existe")
		}
		if !user.Activo {
			return fail(c, fiber.StatusUnauthorized, "USER_INACTIVE", "la cuenta está desactivada")
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUserName, user.Nombre)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles listados. No hay jerarquía implícita:
// si admin debe acceder, se lista explícitamente.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "su rol no tiene permiso para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// actor nombre que se registra en historiales; cae al id si el usuario no tiene nombre.
func actor(c *fiber.Ctx) string {
	if s, _ := c.Locals(LocalUserName).(string); s != "" {
		return s
	}
	return GetUserID(c)
}
