package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := NewValidationError("placa", "es requerido")
	wrapped := fmt.Errorf("crear vehículo: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidInput))

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "es requerido", ve.Fields["placa"])
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("nombre", "es requerido")
	ve.Add("cantidad", "debe ser mayor que 0")

	assert.Equal(t, "entrada inválida: cantidad: debe ser mayor que 0, nombre: es requerido", ve.Error())
}

func TestValidationError_OrNil(t *testing.T) {
	var ve ValidationError
	assert.NoError(t, ve.OrNil())
	ve.Add("x", "y")
	assert.Error(t, ve.OrNil())
}
