package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// EmployeeHandler maneja las peticiones HTTP de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre, email o cargo"
// @Success      200     {object}  dto.Response{data=[]dto.EmployeeResponse}
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.Response{data=dto.EmployeeResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el empleado")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el empleado")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.Response{data=dto.EmployeeResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
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
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.EmployeeResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el empleado")
	if err != nil {
		return err
	}
	var in dto.UpdateEmployeeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el empleado")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar empleado
// @Description  409 mientras tenga herramientas o vehículos asignados.
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el empleado")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "empleado eliminado")
}

// DeliverProduct godoc
// @Summary      Entregar producto a un empleado
// @Description  Descuenta el stock y registra la entrega; sin stock suficiente responde 409 sin cambios.
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del empleado"
// @Param        body  body  dto.DeliverProductRequest  true  "product_id, cantidad"
// @Success      200   {object}  dto.Response{data=dto.EmployeeResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/deliver-product [post]
func (h *EmployeeHandler) DeliverProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el empleado")
	if err != nil {
		return err
	}
	var in dto.DeliverProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.DeliverProduct(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el empleado")
	}
	return sendData(c, fiber.StatusOK, out)
}

// AssignVehicle godoc
// @Summary      Asignar vehículo a un empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del empleado"
// @Param        body  body  dto.AssignVehicleRequest  true  "vehiculo_id"
// @Success      200   {object}  dto.Response{data=dto.VehicleResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/asignar-employee [put]
func (h *EmployeeHandler) AssignVehicle(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el empleado")
	if err != nil {
		return err
	}
	var in dto.AssignVehicleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AssignVehicle(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el empleado")
	}
	return sendData(c, fiber.StatusOK, out)
}
