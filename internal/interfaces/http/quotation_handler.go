package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/quotations"
)

// QuotationHandler cotizaciones: CRUD, líneas, sugerencias, PDF y exportación.
type QuotationHandler struct {
	uc *quotations.UseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotations.UseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización
// @Description  Asigna el folio COT-NNNN y calcula subtotal, IVA (19%) y total en el servidor.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "placa, empresa, cliente, productos"
// @Success      201   {object}  dto.Response{data=dto.QuotationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Folio, placa, empresa o cliente"
// @Param        estado  query  string  false  "pendiente, en_revision, aprobada, rechazada"
// @Success      200     {object}  dto.Response{data=[]dto.QuotationResponse}
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c), strings.TrimSpace(c.Query("estado")))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.Response{data=dto.QuotationResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la cotización")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar cotización
// @Description  Si se envían productos se reemplaza la lista completa y se recalculan los totales.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.QuotationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [put]
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	var in dto.UpdateQuotationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la cotización")
	}
	return sendData(c, fiber.StatusOK, out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationStatusRequest  true  "estado"
// @Success      200   {object}  dto.Response{data=dto.QuotationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [put]
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	var in dto.UpdateQuotationStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la cotización")
	}
	return sendData(c, fiber.StatusOK, out)
}

// UpdateProducts godoc
// @Summary      Modificar líneas de una cotización
// @Description  Cada cambio se direcciona por line_id o, si falta, por index (posición desde 0); una línea inexistente responde 400 sin aplicar nada.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                              true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationProductsRequest  true  "productos"
// @Success      200   {object}  dto.Response{data=dto.QuotationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/products [put]
func (h *QuotationHandler) UpdateProducts(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	var in dto.UpdateQuotationProductsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProducts(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la cotización")
	}
	return sendData(c, fiber.StatusOK, out)
}

// BatchUpdateProducts godoc
// @Summary      Modificar líneas de varias cotizaciones
// @Description  Todo o nada: si una cotización o línea no existe no se aplica ningún cambio.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchUpdateProductsRequest  true  "updates"
// @Success      200   {object}  dto.Response{data=[]dto.QuotationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/products/batch [put]
func (h *QuotationHandler) BatchUpdateProducts(c *fiber.Ctx) error {
	var in dto.BatchUpdateProductsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	for _, u := range in.Updates {
		if !validID(u.QuotationID) {
			return notFound("la cotización " + u.QuotationID)
		}
	}
	out, err := h.uc.BatchUpdateProducts(c.UserContext(), in)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// Suggestions godoc
// @Summary      Sugerencias de productos
// @Description  Coincidencia sin distinguir mayúsculas ni tildes por placa, empresa o proveedor.
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        query  path  string  true  "Texto a buscar"
// @Success      200    {object}  dto.Response{data=[]quotation.Suggestion}
// @Router       /api/quotations/products/suggestions/{query} [get]
func (h *QuotationHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.uc.Suggestions(c.UserContext(), c.Params("query"))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	data, name, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return err
	}
	return sendFile(c, data, name, mimePDF)
}

// Export godoc
// @Summary      Exportar cotizaciones a Excel
// @Tags         quotations
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        estado  query  string  false  "Filtro por estado"
// @Success      200     {file}  binary
// @Router       /api/quotations/export [get]
func (h *QuotationHandler) Export(c *fiber.Ctx) error {
	data, name, err := h.uc.Export(c.UserContext(), strings.TrimSpace(c.Query("estado")))
	if err != nil {
		return err
	}
	return sendFile(c, data, name, mimeXLSX)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la cotización")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "cotización eliminada")
}
