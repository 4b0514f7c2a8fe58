package pricing

import "github.com/shopspring/decimal"

// GiftResult salida de CalculateGift. Montos redondeados al centavo.
type GiftResult struct {
	PerceivedValue  decimal.Decimal `json:"perceived_value"`
	NewProfit       decimal.Decimal `json:"new_profit"`
	ProfitReduction decimal.Decimal `json:"profit_reduction"`
	ExceedsMargin   bool            `json:"exceeds_margin"`
}

// CalculateGift evalúa incluir un regalo cuyo costo sale de la ganancia.
// El valor percibido por el comprador es precio + costo del regalo.
// ExceedsMargin se enciende cuando el regalo cuesta más que la ganancia
// original (la venta quedaría a pérdida); es advertencia, no bloqueo.
func CalculateGift(originalPrice, originalProfit, giftCost decimal.Decimal) GiftResult {
	return GiftResult{
		PerceivedValue:  RoundMoney(originalPrice.Add(giftCost)),
		NewProfit:       RoundMoney(originalProfit.Sub(giftCost)),
		ProfitReduction: RoundMoney(giftCost),
		ExceedsMargin:   giftCost.GreaterThan(originalProfit),
	}
}
