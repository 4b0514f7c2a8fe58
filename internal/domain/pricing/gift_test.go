package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Escenario de referencia: precio 49.900, ganancia 12.000, regalo de 2.000.
func TestCalculateGift_EscenarioRegaloDosMil(t *testing.T) {
	r := CalculateGift(dec("49900"), dec("12000"), dec("2000"))

	assert.True(t, r.PerceivedValue.Equal(dec("51900")), "valor percibido: %s", r.PerceivedValue)
	assert.True(t, r.NewProfit.Equal(dec("10000")), "nueva ganancia: %s", r.NewProfit)
	assert.True(t, r.ProfitReduction.Equal(dec("2000")))
	assert.False(t, r.ExceedsMargin, "2.000 no supera la ganancia de 12.000")
}

// Regalo de costo 0 es identidad y no enciende la bandera.
func TestCalculateGift_CostoCeroEsIdentidad(t *testing.T) {
	r := CalculateGift(dec("49900"), dec("12000"), decimal.Zero)
	assert.True(t, r.PerceivedValue.Equal(dec("49900")))
	assert.True(t, r.NewProfit.Equal(dec("12000")))
	assert.True(t, r.ProfitReduction.IsZero())
	assert.False(t, r.ExceedsMargin)
}

// Regalo más caro que la ganancia: venta a pérdida, bandera encendida.
func TestCalculateGift_RegaloSuperaGanancia(t *testing.T) {
	r := CalculateGift(dec("49900"), dec("12000"), dec("12001"))
	assert.True(t, r.ExceedsMargin)
	assert.True(t, r.NewProfit.IsNegative(), "ganancia: %s", r.NewProfit)

	// Igual a la ganancia no la enciende (queda exactamente en 0).
	r = CalculateGift(dec("49900"), dec("12000"), dec("12000"))
	assert.False(t, r.ExceedsMargin)
	assert.True(t, r.NewProfit.IsZero())
}

// Todo monto devuelto está redondeado al centavo.
func TestCalculateGift_RedondeoAlCentavo(t *testing.T) {
	r := CalculateGift(dec("19999.995"), dec("4444.449"), dec("1111.115"))
	assertCentavos(t, "perceived_value", r.PerceivedValue)
	assertCentavos(t, "new_profit", r.NewProfit)
	assertCentavos(t, "profit_reduction", r.ProfitReduction)
}
