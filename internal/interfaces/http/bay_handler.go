package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// BayHandler CRUD de bahías.
type BayHandler struct {
	uc *usecase.BayUseCase
}

// NewBayHandler construye el handler.
func NewBayHandler(uc *usecase.BayUseCase) *BayHandler {
	return &BayHandler{uc: uc}
}

// List godoc
// @Summary      Listar bahías
// @Tags         bays
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.Response{data=[]dto.BayResponse}
// @Router       /api/bays [get]
func (h *BayHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener bahía
// @Tags         bays
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bahía"
// @Success      200  {object}  dto.Response{data=dto.BayResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bays/{id} [get]
func (h *BayHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la bahía")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la bahía")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear bahía
// @Tags         bays
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BayRequest  true  "nombre, vehiculos"
// @Success      201   {object}  dto.Response{data=dto.BayResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bays [post]
func (h *BayHandler) Create(c *fiber.Ctx) error {
	var in dto.BayRequest
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
// @Summary      Actualizar bahía
// @Tags         bays
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID de la bahía"
// @Param        body  body  dto.BayRequest  true  "nombre, vehiculos"
// @Success      200   {object}  dto.Response{data=dto.BayResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bays/{id} [put]
func (h *BayHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la bahía")
	if err != nil {
		return err
	}
	var in dto.BayRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la bahía")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar bahía
// @Tags         bays
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bahía"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bays/{id} [delete]
func (h *BayHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la bahía")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "bahía eliminada")
}
