package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// AuthHandler maneja login, perfil propio y administración de usuarios.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Response{data=dto.LoginResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.UserResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// UpdateMe godoc
// @Summary      Actualizar perfil propio
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateMeRequest  true  "nombre, email"
// @Success      200   {object}  dto.Response{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateMeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMe(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el usuario")
	}
	return sendData(c, fiber.StatusOK, out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return err
	}
	return sendMessage(c, "contraseña actualizada")
}

// Register godoc
// @Summary      Registrar usuario (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nombre, email, password, role"
// @Success      201   {object}  dto.Response{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, user)
}

// Deactivate godoc
// @Summary      Desactivar usuario (admin)
// @Description  Las cuentas admin no se pueden desactivar, tampoco la propia.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response{data=dto.UserResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/{id}/deactivate [put]
func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el usuario")
	if err != nil {
		return err
	}
	out, err := h.uc.Deactivate(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el usuario")
	}
	return sendData(c, fiber.StatusOK, out)
}

// ForgotPassword godoc
// @Summary      Solicitar recuperación de contraseña
// @Description  Responde lo mismo exista o no la cuenta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ForgotPassword(c.UserContext(), in.Email); err != nil {
		return err
	}
	return sendMessage(c, "si el email está registrado, se generó un enlace de recuperación")
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.ResetPassword(c.UserContext(), in); err != nil {
		return err
	}
	return sendMessage(c, "contraseña restablecida")
}

// ListUsers godoc
// @Summary      Listar usuarios (admin)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre o email"
// @Success      200     {object}  dto.Response{data=[]dto.UserResponse}
// @Router       /api/auth/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetUser godoc
// @Summary      Obtener usuario (admin)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response{data=dto.UserResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/users/{id} [get]
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el usuario")
	if err != nil {
		return err
	}
	out, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el usuario")
	}
	return sendData(c, fiber.StatusOK, out)
}
