package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/tools"
)

// ToolHandler herramientas: CRUD, transiciones de estado, estadísticas y exportación.
type ToolHandler struct {
	uc *tools.UseCase
}

// NewToolHandler construye el handler.
func NewToolHandler(uc *tools.UseCase) *ToolHandler {
	return &ToolHandler{uc: uc}
}

// List godoc
// @Summary      Listar herramientas activas
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre o SKU"
// @Param        estado  query  string  false  "stock, en_uso, dañada, mantenimiento, reparacion_sencilla"
// @Success      200     {object}  dto.Response{data=[]dto.ToolResponse}
// @Router       /api/tools [get]
func (h *ToolHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c), strings.TrimSpace(c.Query("estado")))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// Available godoc
// @Summary      Herramientas en stock
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.Response{data=[]dto.ToolResponse}
// @Router       /api/tools/available [get]
func (h *ToolHandler) Available(c *fiber.Ctx) error {
	out, err := h.uc.Available(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// Assigned godoc
// @Summary      Herramientas en uso
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Filtra por empleado"
// @Success      200          {object}  dto.Response{data=[]dto.ToolResponse}
// @Router       /api/tools/assigned [get]
func (h *ToolHandler) Assigned(c *fiber.Ctx) error {
	employeeID := strings.TrimSpace(c.Query("employee_id"))
	if employeeID != "" && !validID(employeeID) {
		return notFound("el empleado")
	}
	out, err := h.uc.Assigned(c.UserContext(), pageFromQuery(c), employeeID)
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener herramienta
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la herramienta"
// @Success      200  {object}  dto.Response{data=dto.ToolResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tools/{id} [get]
func (h *ToolHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear herramienta
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateToolRequest  true  "Datos de la herramienta"
// @Success      201   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tools [post]
func (h *ToolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateToolRequest
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
// @Summary      Actualizar herramienta
// @Description  No modifica estado, asignación ni historial.
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la herramienta"
// @Param        body  body  dto.UpdateToolRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tools/{id} [put]
func (h *ToolHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	var in dto.UpdateToolRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Dar de baja herramienta
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la herramienta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tools/{id} [delete]
func (h *ToolHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "herramienta dada de baja")
}

// Assign godoc
// @Summary      Asignar herramienta
// @Description  Solo desde stock; otro estado responde 409 TOOL_NOT_AVAILABLE.
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la herramienta"
// @Param        body  body  dto.AssignToolRequest  true  "employee_id, observaciones"
// @Success      200   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/assign [put]
func (h *ToolHandler) Assign(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	var in dto.AssignToolRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Assign(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Return godoc
// @Summary      Devolver herramienta
// @Description  Solo desde en_uso; otro estado responde 409 TOOL_NOT_IN_USE.
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la herramienta"
// @Param        body  body  dto.ReturnToolRequest  true  "estado, observaciones"
// @Success      200   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/return [put]
func (h *ToolHandler) Return(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	var in dto.ReturnToolRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Return(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Maintenance godoc
// @Summary      Registrar mantenimiento
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la herramienta"
// @Param        body  body  dto.MaintenanceRequest  true  "descripcion, costo, proximo_mantenimiento"
// @Success      200   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/maintenance [post]
func (h *ToolHandler) Maintenance(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	var in dto.MaintenanceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterMaintenance(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Repair godoc
// @Summary      Reintegrar herramienta reparada a stock
// @Tags         tools
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la herramienta"
// @Param        body  body  dto.RepairToolRequest  true  "observaciones, costo"
// @Success      200   {object}  dto.Response{data=dto.ToolResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/repair [put]
func (h *ToolHandler) Repair(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	var in dto.RepairToolRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Repair(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

// History godoc
// @Summary      Historial de la herramienta
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la herramienta"
// @Success      200  {object}  dto.Response{data=[]entity.ToolEvent}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tools/{id}/history [get]
func (h *ToolHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la herramienta")
	if err != nil {
		return err
	}
	out, err := h.uc.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la herramienta")
	}
	return sendData(c, fiber.StatusOK, out)
}

func statsQuery(c *fiber.Ctx) (dto.ToolStatsQuery, error) {
	var q dto.ToolStatsQuery
	err := parseQuery(c, &q)
	return q, err
}

// MostUsed godoc
// @Summary      Herramientas más usadas
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week, month, year"
// @Param        limit   query  int     false  "Máximo de resultados"
// @Success      200     {object}  dto.Response{data=[]tooling.ToolUsage}
// @Router       /api/tools/stats/most-used [get]
func (h *ToolHandler) MostUsed(c *fiber.Ctx) error {
	q, err := statsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.MostUsed(c.UserContext(), q)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// TopEmployees godoc
// @Summary      Empleados con más asignaciones
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week, month, year"
// @Param        limit   query  int     false  "Máximo de resultados"
// @Success      200     {object}  dto.Response{data=[]tooling.EmployeeUsage}
// @Router       /api/tools/stats/top-employees [get]
func (h *ToolHandler) TopEmployees(c *fiber.Ctx) error {
	q, err := statsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.TopEmployees(c.UserContext(), q)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// UsageDuration godoc
// @Summary      Duración promedio de uso
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=tooling.UsageDurationSummary}
// @Router       /api/tools/stats/usage-duration [get]
func (h *ToolHandler) UsageDuration(c *fiber.Ctx) error {
	out, err := h.uc.UsageDuration(c.UserContext())
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// MaintenanceCost godoc
// @Summary      Costo de mantenimiento
// @Tags         tools
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week, month, year"
// @Success      200     {object}  dto.Response{data=tooling.MaintenanceCostSummary}
// @Router       /api/tools/stats/maintenance-cost [get]
func (h *ToolHandler) MaintenanceCost(c *fiber.Ctx) error {
	q, err := statsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.MaintenanceCost(c.UserContext(), q)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// Export godoc
// @Summary      Exportar herramientas a Excel
// @Tags         tools
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/tools/export [get]
func (h *ToolHandler) Export(c *fiber.Ctx) error {
	data, name, err := h.uc.Export(c.UserContext())
	if err != nil {
		return err
	}
	return sendFile(c, data, name, mimeXLSX)
}
