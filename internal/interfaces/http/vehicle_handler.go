package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// VehicleHandler maneja /api/vehiculos.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(10)
// @Param        search         query  string  false  "Placa o compañía"
// @Param        estado         query  string  false  "cotizacion, mantenimiento, reparado"
// @Param        tipo_vehiculo  query  string  false  "Trailer, Van, Botellero"
// @Success      200            {object}  dto.Response{data=[]dto.VehicleResponse}
// @Router       /api/vehiculos [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c),
		strings.TrimSpace(c.Query("estado")), strings.TrimSpace(c.Query("tipo_vehiculo")))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el vehículo")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear vehículo
// @Description  La placa se guarda en mayúsculas y debe ser única.
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "placa, compania, tipo_vehiculo, estado"
// @Success      201   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vehiculos [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
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
// @Summary      Actualizar vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del vehículo"
// @Param        body  body  dto.UpdateVehicleRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	var in dto.UpdateVehicleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el vehículo")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "vehículo eliminado")
}

// AssignEmployee godoc
// @Summary      Asignar empleado al vehículo
// @Description  employee_id null libera el vehículo.
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del vehículo"
// @Param        body  body  dto.AssignEmployeeRequest  true  "employee_id"
// @Success      200   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/asignar-employees [put]
func (h *VehicleHandler) AssignEmployee(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	var in dto.AssignEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AssignEmployee(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el vehículo")
	}
	return sendData(c, fiber.StatusOK, out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del vehículo"
// @Param        body  body  dto.UpdateVehicleStatusRequest  true  "estado"
// @Success      200   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/update-status [put]
func (h *VehicleHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	var in dto.UpdateVehicleStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el vehículo")
	}
	return sendData(c, fiber.StatusOK, out)
}

// AssignProduct godoc
// @Summary      Asignar productos del inventario al vehículo
// @Tags         vehiculos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del vehículo"
// @Param        body  body  dto.AssignProductRequest  true  "product_id, cantidad"
// @Success      200   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehiculos/{id}/asignar-productos [post]
func (h *VehicleHandler) AssignProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el vehículo")
	if err != nil {
		return err
	}
	var in dto.AssignProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AssignProduct(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el vehículo")
	}
	return sendData(c, fiber.StatusOK, out)
}
