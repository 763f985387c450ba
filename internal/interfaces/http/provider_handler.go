package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ProviderHandler maneja /api/proveedores.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre, empresa o NIT"
// @Success      200     {object}  dto.Response{data=[]dto.ProviderResponse}
// @Router       /api/proveedores [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el proveedor")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el proveedor")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.ProviderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del proveedor"
// @Param        body  body  dto.ProviderRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el proveedor")
	if err != nil {
		return err
	}
	var in dto.ProviderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el proveedor")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [delete]
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el proveedor")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "proveedor eliminado")
}
