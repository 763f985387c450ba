package inventory

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU()
	assert.Regexp(t, regexp.MustCompile(`^SKU-[0-9A-F]{8}$`), sku)
	assert.NotEqual(t, sku, GenerateSKU())
}

func TestCheckWithdrawal(t *testing.T) {
	assert.NoError(t, CheckWithdrawal(3, 3))
	assert.ErrorIs(t, CheckWithdrawal(3, 5), domain.ErrInsufficientStock)
	assert.ErrorIs(t, CheckWithdrawal(3, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, CheckWithdrawal(3, -1), domain.ErrInvalidInput)
}

func TestCheckQuantity(t *testing.T) {
	assert.NoError(t, CheckQuantity(0))
	assert.ErrorIs(t, CheckQuantity(-2), domain.ErrInvalidInput)
}

func TestWeightedUnitPrice(t *testing.T) {
	// (10 × 1000 + 10 × 2000) / 20 = 1500
	got := WeightedUnitPrice(10, decimal.NewFromInt(1000), 10, decimal.NewFromInt(2000))
	assert.True(t, got.Equal(decimal.NewFromInt(1500)), got.String())

	same := WeightedUnitPrice(10, decimal.NewFromInt(1000), 5, decimal.Zero)
	assert.True(t, same.Equal(decimal.NewFromInt(1000)))

	first := WeightedUnitPrice(0, decimal.Zero, 4, decimal.NewFromInt(700))
	assert.True(t, first.Equal(decimal.NewFromInt(700)))
}

func TestAdjustmentEntry(t *testing.T) {
	now := time.Now()
	e := AdjustmentEntry(3, 8, "admin@taller.co", now)
	assert.Equal(t, entity.AccionAjuste, e.Accion)
	assert.Equal(t, "cantidad 3 → 8", e.Detalles)
	assert.Equal(t, now, e.Fecha)
}
