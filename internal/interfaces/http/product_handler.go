package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  SKU vacío se autogenera con el formato SKU-XXXXXXXX.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in, actor(c))
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el producto")
	}
	return sendData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(10)
// @Param        search     query  string  false  "Nombre, SKU o descripción"
// @Param        categoria  query  string  false  "Categoría"
// @Success      200        {object}  dto.Response{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c), strings.TrimSpace(c.Query("categoria")))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// Count godoc
// @Summary      Conteo de productos y unidades
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.ProductCountResponse}
// @Router       /api/products/count [get]
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	out, err := h.uc.Count(c.UserContext())
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el producto")
	}
	return sendData(c, fiber.StatusOK, out)
}

// SetQuantity godoc
// @Summary      Fijar cantidad
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.SetQuantityRequest  true  "cantidad"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/cantidad [put]
func (h *ProductHandler) SetQuantity(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	var in dto.SetQuantityRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetQuantity(c.UserContext(), id, *in.Cantidad, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el producto")
	}
	return sendData(c, fiber.StatusOK, out)
}

// AddToInventory godoc
// @Summary      Ingresar mercancía por SKU
// @Description  Suma la cantidad si el SKU existe; si no, crea el producto (201).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToInventoryRequest  true  "sku, cantidad y datos del producto nuevo"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Success      201   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/add-to-inventory [post]
func (h *ProductHandler) AddToInventory(c *fiber.Ctx) error {
	var in dto.AddToInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, created, err := h.uc.AddToInventory(c.UserContext(), in, actor(c))
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return sendData(c, status, out)
}

// ReturnToInventory godoc
// @Summary      Devolver unidades al inventario
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del producto"
// @Param        body  body  dto.ReturnToInventoryRequest  true  "cantidad, empleado"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/return-to-inventory/{id} [put]
func (h *ProductHandler) ReturnToInventory(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	var in dto.ReturnToInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ReturnToInventory(c.UserContext(), id, in, actor(c))
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el producto")
	}
	return sendData(c, fiber.StatusOK, out)
}

// History godoc
// @Summary      Historial del producto
// @Description  Más reciente primero.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Response{data=[]entity.HistoryEntry}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	out, err := h.uc.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el producto")
	}
	return sendData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el producto")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "producto eliminado")
}
