package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Costeo representa un cálculo de costos y precio guardado para un producto
// de dropshipping. El motor de ofertas lo trata como snapshot inmutable: solo
// el subsistema de costeo lo crea y lo modifica.
type Costeo struct {
	ID          string
	UserID      string
	ProductName string

	ProductCost  decimal.Decimal // costo del proveedor por unidad
	ShippingCost decimal.Decimal // flete por unidad
	OtherCosts   decimal.Decimal // comisiones de pasarela, empaque, etc.

	SuggestedPrice       decimal.Decimal // precio de venta sugerido
	NetProfitPerSale     decimal.Decimal // ganancia neta por venta (derivada)
	DesiredMarginPercent decimal.Decimal // margen objetivo del usuario

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalcNetProfit reestablece NetProfitPerSale a partir de los componentes de
// costo y el precio sugerido. Se invoca en cada create/update del costeo.
func (c *Costeo) RecalcNetProfit() {
	c.NetProfitPerSale = c.SuggestedPrice.
		Sub(c.ProductCost).
		Sub(c.ShippingCost).
		Sub(c.OtherCosts)
}
