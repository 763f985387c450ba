package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/checkin"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// CheckinHandler ingresos y salidas de vehículos con evidencia (fotos y firmas).
type CheckinHandler struct {
	uc *checkin.UseCase
}

// NewCheckinHandler construye el handler.
func NewCheckinHandler(uc *checkin.UseCase) *CheckinHandler {
	return &CheckinHandler{uc: uc}
}

// fileFields campos de archivo aceptados. "fotos[]" se normaliza a "fotos".
var fileFields = map[string]string{
	checkin.FieldFotos:           checkin.FieldFotos,
	checkin.FieldFotos + "[]":    checkin.FieldFotos,
	checkin.FieldFirmaSupervisor: checkin.FieldFirmaSupervisor,
	checkin.FieldFirmaConductor:  checkin.FieldFirmaConductor,
	checkin.FieldFirmaEntrega:    checkin.FieldFirmaEntrega,
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// readUploads lee los archivos del formulario en memoria; el tamaño ya lo acota el BodyLimit del servidor.
func readUploads(form *multipart.Form) ([]ports.Upload, error) {
	var out []ports.Upload
	for name, headers := range form.File {
		field, ok := fileFields[name]
		if !ok {
			return nil, domain.NewValidationError(name, "campo de archivo no permitido")
		}
		for _, fh := range headers {
			data, err := readPart(fh)
			if err != nil {
				return nil, err
			}
			out = append(out, ports.Upload{Field: field, Filename: fh.Filename, Content: data})
		}
	}
	return out, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formValue primer valor del campo o "".
func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// formTime acepta RFC3339 o fecha simple (2006-01-02). Vacío devuelve nil.
func formTime(form *multipart.Form, key string) (*time.Time, error) {
	raw := formValue(form, key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(key, "fecha inválida")
}

// formJSON decodifica un campo de formulario que trae JSON (listas de reparaciones).
func formJSON(form *multipart.Form, key string, dest interface{}) error {
	raw := formValue(form, key)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return domain.NewValidationError(key, "debe ser un arreglo JSON válido")
	}
	return nil
}

func (h *CheckinHandler) parseIngreso(c *fiber.Ctx) (dto.CreateIngresoRequest, []ports.Upload, error) {
	var in dto.CreateIngresoRequest
	if !isMultipart(c) {
		return in, nil, parseBody(c, &in)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, domain.NewValidationError("body", "formulario multipart inválido")
	}
	in.Empresa = formValue(form, "empresa")
	in.ConductorNombre = formValue(form, "conductor_nombre")
	in.ConductorTelefono = formValue(form, "conductor_telefono")
	in.ConductorCedula = formValue(form, "conductor_cedula")
	in.VehiculoPlaca = formValue(form, "vehiculo_placa")
	in.VehiculoTipo = formValue(form, "vehiculo_tipo")
	in.Observaciones = formValue(form, "observaciones")
	if in.FechaIngreso, err = formTime(form, "fecha_ingreso"); err != nil {
		return in, nil, err
	}
	if err := formJSON(form, "reparaciones", &in.Reparaciones); err != nil {
		return in, nil, err
	}
	if err := validateStruct(&in); err != nil {
		return in, nil, err
	}
	files, err := readUploads(form)
	return in, files, err
}

func (h *CheckinHandler) parseSalida(c *fiber.Ctx) (dto.CreateSalidaRequest, []ports.Upload, error) {
	var in dto.CreateSalidaRequest
	if !isMultipart(c) {
		return in, nil, parseBody(c, &in)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, domain.NewValidationError("body", "formulario multipart inválido")
	}
	in.IngresoID = formValue(form, "ingreso_id")
	in.Observaciones = formValue(form, "observaciones")
	if in.FechaSalida, err = formTime(form, "fecha_salida"); err != nil {
		return in, nil, err
	}
	if err := formJSON(form, "reparaciones", &in.Reparaciones); err != nil {
		return in, nil, err
	}
	files, err := readUploads(form)
	return in, files, err
}

// CreateIngreso godoc
// @Summary      Registrar ingreso de vehículo
// @Description  Multipart: campos del ingreso, reparaciones como JSON, fotos[] y las firmas de supervisor y conductor.
// @Tags         ingresos
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        empresa             formData  string  true   "Empresa"
// @Param        conductor_nombre    formData  string  true   "Nombre del conductor"
// @Param        conductor_telefono  formData  string  true   "Teléfono del conductor"
// @Param        conductor_cedula    formData  string  false  "Cédula del conductor"
// @Param        vehiculo_placa      formData  string  true   "Placa"
// @Param        vehiculo_tipo       formData  string  true   "Tipo de vehículo"
// @Param        fecha_ingreso       formData  string  false  "RFC3339 o AAAA-MM-DD"
// @Param        reparaciones        formData  string  false  "JSON: [{descripcion, prioridad, aprobada}]"
// @Param        observaciones       formData  string  false  "Observaciones"
// @Param        fotos               formData  file    false  "Fotos"
// @Param        firma_supervisor    formData  file    true   "Firma del supervisor"
// @Param        firma_conductor     formData  file    true   "Firma del conductor"
// @Success      201  {object}  dto.Response{data=dto.IngresoResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ingresos [post]
func (h *CheckinHandler) CreateIngreso(c *fiber.Ctx) error {
	in, files, err := h.parseIngreso(c)
	if err != nil {
		return err
	}
	out, err := h.uc.CreateIngreso(c.UserContext(), in, files)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, out)
}

// ListIngresos godoc
// @Summary      Listar ingresos
// @Tags         ingresos
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Placa, empresa o conductor"
// @Param        estado  query  string  false  "ingresado, en_revision, en_reparacion, completado"
// @Success      200     {object}  dto.Response{data=[]dto.IngresoResponse}
// @Router       /api/ingresos [get]
func (h *CheckinHandler) ListIngresos(c *fiber.Ctx) error {
	out, err := h.uc.ListIngresos(c.UserContext(), pageFromQuery(c), strings.TrimSpace(c.Query("estado")))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetIngreso godoc
// @Summary      Obtener ingreso
// @Tags         ingresos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {object}  dto.Response{data=dto.IngresoResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingresos/{id} [get]
func (h *CheckinHandler) GetIngreso(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el ingreso")
	if err != nil {
		return err
	}
	out, err := h.uc.GetIngreso(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el ingreso")
	}
	return sendData(c, fiber.StatusOK, out)
}

// UpdateIngreso godoc
// @Summary      Actualizar ingreso
// @Tags         ingresos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del ingreso"
// @Param        body  body  dto.UpdateIngresoRequest  true  "estado, observaciones, reparaciones"
// @Success      200   {object}  dto.Response{data=dto.IngresoResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ingresos/{id} [put]
func (h *CheckinHandler) UpdateIngreso(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el ingreso")
	if err != nil {
		return err
	}
	var in dto.UpdateIngresoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateIngreso(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("el ingreso")
	}
	return sendData(c, fiber.StatusOK, out)
}

// DeleteIngreso godoc
// @Summary      Eliminar ingreso
// @Description  409 si el ingreso ya tiene salida.
// @Tags         ingresos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ingresos/{id} [delete]
func (h *CheckinHandler) DeleteIngreso(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "el ingreso")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteIngreso(c.UserContext(), id); err != nil {
		return err
	}
	return sendMessage(c, "ingreso eliminado")
}

// CreateSalida godoc
// @Summary      Registrar salida de vehículo
// @Description  Multipart: ingreso_id, reparaciones realizadas como JSON, fotos[] y firma_entrega.
// @Tags         salidas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        ingreso_id     formData  string  true   "ID del ingreso"
// @Param        fecha_salida   formData  string  false  "RFC3339 o AAAA-MM-DD"
// @Param        reparaciones   formData  string  false  "JSON: [{descripcion, realizada, observaciones}]"
// @Param        observaciones  formData  string  false  "Observaciones"
// @Param        fotos          formData  file    false  "Fotos"
// @Param        firma_entrega  formData  file    true   "Firma de entrega"
// @Success      201  {object}  dto.Response{data=dto.SalidaResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/salidas [post]
func (h *CheckinHandler) CreateSalida(c *fiber.Ctx) error {
	in, files, err := h.parseSalida(c)
	if err != nil {
		return err
	}
	out, err := h.uc.CreateSalida(c.UserContext(), in, files)
	if err != nil {
		return err
	}
	return sendData(c, fiber.StatusCreated, out)
}

// ListSalidas godoc
// @Summary      Listar salidas
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.Response{data=[]dto.SalidaResponse}
// @Router       /api/salidas [get]
func (h *CheckinHandler) ListSalidas(c *fiber.Ctx) error {
	out, err := h.uc.ListSalidas(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return sendList(c, out)
}

// GetSalida godoc
// @Summary      Obtener salida
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.Response{data=dto.SalidaResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salidas/{id} [get]
func (h *CheckinHandler) GetSalida(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "la salida")
	if err != nil {
		return err
	}
	out, err := h.uc.GetSalida(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la salida")
	}
	return sendData(c, fiber.StatusOK, out)
}

// GetSalidaByIngreso godoc
// @Summary      Salida de un ingreso
// @Tags         salidas
// @Security     Bearer
// @Produce      json
// @Param        ingresoId  path  string  true  "ID del ingreso"
// @Success      200        {object}  dto.Response{data=dto.SalidaResponse}
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/salidas/ingreso/{ingresoId} [get]
func (h *CheckinHandler) GetSalidaByIngreso(c *fiber.Ctx) error {
	id, err := pathID(c, "ingresoId", "la salida del ingreso")
	if err != nil {
		return err
	}
	out, err := h.uc.GetSalidaByIngreso(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound("la salida del ingreso")
	}
	return sendData(c, fiber.StatusOK, out)
}
