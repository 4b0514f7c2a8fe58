package pricing

import "github.com/shopspring/decimal"

// lowMarginThreshold: por debajo de este margen (%) la oferta se marca como
// margen bajo. Bandera informativa, no bloquea la activación.
var lowMarginThreshold = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// DiscountResult salida de CalculateDiscount. Montos redondeados al centavo.
type DiscountResult struct {
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	OfferPrice       decimal.Decimal `json:"offer_price"`
	NewProfit        decimal.Decimal `json:"new_profit"`
	NewMarginPercent decimal.Decimal `json:"new_margin_percent"`
	IsLowMargin      bool            `json:"is_low_margin"`
}

// CalculateDiscount aplica un descuento porcentual sobre el precio original.
// El descuento sale íntegro de la ganancia, no del costo:
//
//	descuento = precio × pct/100
//	nuevaGanancia = ganancia − descuento
//
// No acota discountPercent: con pct ≥ 100 el precio de oferta resultante es
// cero o negativo y el margen se reporta como 0 (precio no positivo). La
// validación de rango es responsabilidad del borde que captura la entrada.
func CalculateDiscount(originalPrice, originalProfit, discountPercent decimal.Decimal) DiscountResult {
	discountAmount := RoundMoney(originalPrice.Mul(discountPercent).Div(hundred))
	offerPrice := RoundMoney(originalPrice.Sub(discountAmount))
	newProfit := RoundMoney(originalProfit.Sub(discountAmount))

	newMargin := decimal.Zero
	if offerPrice.GreaterThan(decimal.Zero) {
		newMargin = RoundMoney(newProfit.Div(offerPrice).Mul(hundred))
	}

	return DiscountResult{
		DiscountAmount:   discountAmount,
		OfferPrice:       offerPrice,
		NewProfit:        newProfit,
		NewMarginPercent: newMargin,
		IsLowMargin:      newMargin.LessThan(lowMarginThreshold),
	}
}
