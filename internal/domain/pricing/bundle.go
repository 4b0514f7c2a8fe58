package pricing

import "github.com/shopspring/decimal"

// BundleRow una fila de la tabla de precios por cantidad de un combo.
type BundleRow struct {
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	SavingsPerUnit decimal.Decimal `json:"savings_per_unit"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

// CalculateBundle construye la tabla de precios de un combo multi-unidad.
// La primera unidad se vende al precio original; cada unidad adicional se
// cobra a costo del proveedor más una fracción de la ganancia original:
//
//	precioAdicional = costo + ganancia × margen/100
//	gananciaAdicional = ganancia × margen/100
//
// Con margen 100 cada unidad extra rinde igual que la primera (sin descuento
// real); con margen → 0 las unidades extra se venden casi a costo.
//
// La salida tiene exactamente maxQuantity filas en orden 1..maxQuantity.
// La fila 1 es siempre (1, precio, precio, 0, ganancia), punto fijo de la
// fórmula independiente del margen. Con maxQuantity < 1 devuelve solo esa
// fila (la función es total; el rango útil lo acota el wizard).
func CalculateBundle(originalPrice, supplierCost, originalProfit, marginPercent decimal.Decimal, maxQuantity int) []BundleRow {
	if maxQuantity < 1 {
		maxQuantity = 1
	}

	marginFraction := marginPercent.Div(hundred)
	additionalUnitPrice := RoundMoney(supplierCost.Add(originalProfit.Mul(marginFraction)))
	additionalUnitProfit := RoundMoney(originalProfit.Mul(marginFraction))

	rows := make([]BundleRow, 0, maxQuantity)
	rows = append(rows, BundleRow{
		Quantity:       1,
		TotalPrice:     RoundMoney(originalPrice),
		PricePerUnit:   RoundMoney(originalPrice),
		SavingsPerUnit: decimal.Zero.Round(2),
		TotalProfit:    RoundMoney(originalProfit),
	})

	for q := 2; q <= maxQuantity; q++ {
		extraUnits := decimal.NewFromInt(int64(q - 1))
		qty := decimal.NewFromInt(int64(q))

		totalPrice := RoundMoney(originalPrice.Add(additionalUnitPrice.Mul(extraUnits)))
		pricePerUnit := RoundMoney(totalPrice.Div(qty))
		savingsPerUnit := RoundMoney(originalPrice.Sub(pricePerUnit))
		totalProfit := RoundMoney(originalProfit.Add(additionalUnitProfit.Mul(extraUnits)))

		rows = append(rows, BundleRow{
			Quantity:       q,
			TotalPrice:     totalPrice,
			PricePerUnit:   pricePerUnit,
			SavingsPerUnit: savingsPerUnit,
			TotalProfit:    totalProfit,
		})
	}
	return rows
}
