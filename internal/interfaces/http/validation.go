package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON, o el de query si no tiene tag json.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := f.Tag.Get("json")
		if tag == "" {
			tag = f.Tag.Get("query")
		}
		name := strings.SplitN(tag, ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			if f.Anonymous {
				return ""
			}
			return f.Name
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y valida los tags `validate`.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return domain.NewValidationError("body", "cuerpo JSON inválido")
	}
	return validateStruct(dest)
}

// parseQuery igual que parseBody sobre los parámetros de consulta.
func parseQuery(c *fiber.Ctx, dest interface{}) error {
	if err := c.QueryParser(dest); err != nil {
		return domain.NewValidationError("query", "parámetros inválidos")
	}
	return validateStruct(dest)
}

func validateStruct(dest interface{}) error {
	err := validate.Struct(dest)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("body", err.Error())
	}
	ve := &domain.ValidationError{}
	for _, fe := range verrs {
		ve.Add(fieldPath(fe), validationMessage(fe))
	}
	return ve
}

// fieldPath quita el nombre del struct raíz: "CreateQuotationRequest.productos[0].nombre" → "productos[0].nombre".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "..", ".")
	return strings.Trim(ns, ".")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "email":
		return "debe ser un email válido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "es inválido"
}
