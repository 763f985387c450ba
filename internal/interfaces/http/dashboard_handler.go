package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Taller-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del tablero principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Conteos de empleados, inventario, bahías, vehículos, herramientas, cotizaciones e ingresos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.DashboardResponse}
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, summary)
}
