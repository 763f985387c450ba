package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// errorMapping código estable y status HTTP de un error de dominio.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores específicos van antes que los genéricos que envuelven.
var errorTable = []errorMapping{
	{domain.ErrToolNotAvailable, fiber.StatusConflict, "TOOL_NOT_AVAILABLE"},
	{domain.ErrToolNotInUse, fiber.StatusConflict, "TOOL_NOT_IN_USE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrIngresoHasSalida, fiber.StatusConflict, "INGRESO_HAS_SALIDA"},
	{domain.ErrIngresoAlreadyReleased, fiber.StatusConflict, "INGRESO_ALREADY_RELEASED"},
	{domain.ErrEmployeeInUse, fiber.StatusConflict, "EMPLOYEE_IN_USE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrQuotationLineNotFound, fiber.StatusBadRequest, "LINE_NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusBadRequest, "DUPLICATE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrAccountInactive, fiber.StatusUnauthorized, "ACCOUNT_INACTIVE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

// errorResponder traduce los errores que devuelven los handlers a la respuesta JSON.
// Los 500 se registran con el logger de la petición y el cliente solo recibe un mensaje genérico.
type errorResponder struct {
	log *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "VALIDATION", Message: ve.Error(), Fields: ve.Fields,
		})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return fail(c, m.status, m.code, err.Error())
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fiberCode(fe.Code), fe.Message)
	}
	logger.FromContext(c.UserContext(), r.log.Request(requestID(c))).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor")
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	return "ERROR"
}

// ErrorHandler handler global de Fiber: mismo sobre de error para rutas inexistentes y pánicos recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	r := errorResponder{log: log}
	return r.respond
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: code, Message: message})
}

// notFoundError 404 con el recurso en el mensaje ("la herramienta", "el producto").
type notFoundError string

func (e notFoundError) Error() string        { return "no se encontró " + string(e) }
func (e notFoundError) Is(target error) bool { return target == domain.ErrNotFound }

func notFound(what string) error { return notFoundError(what) }

func sendData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.Response{Success: true, Data: data})
}

func sendMessage(c *fiber.Ctx, message string) error {
	return c.JSON(dto.MessageResponse{Success: true, Message: message})
}

func sendList[T any](c *fiber.Ctx, page *dto.ListResponse[T]) error {
	return c.JSON(dto.Response{Success: true, Data: page.Items, Pagination: &page.Pagination})
}

// Tipos de contenido de las descargas.
const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// sendFile responde el archivo como descarga con el nombre indicado.
func sendFile(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return v
	}
	return ""
}

// validID los ids son UUID; cualquier otro formato se responde como 404.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// pathID lee el parámetro de ruta; un id que no es UUID se trata como inexistente.
func pathID(c *fiber.Ctx, param, what string) (string, error) {
	id := c.Params(param)
	if !validID(id) {
		return "", notFound(what)
	}
	return id, nil
}

// pageFromQuery lee page, limit y search con los valores por defecto.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Page:   c.QueryInt("page", dto.DefaultPage),
		Limit:  c.QueryInt("limit", dto.DefaultLimit),
		Search: strings.TrimSpace(c.Query("search")),
	}
	p.Normalize()
	return p
}
