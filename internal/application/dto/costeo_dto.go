package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCosteoRequest entrada para guardar un costeo de producto.
// NetProfitPerSale no se acepta del cliente: se deriva en el servidor.
type CreateCosteoRequest struct {
	ProductName          string          `json:"product_name" validate:"required,min=1,max=200"`
	ProductCost          decimal.Decimal `json:"product_cost"`
	ShippingCost         decimal.Decimal `json:"shipping_cost"`
	OtherCosts           decimal.Decimal `json:"other_costs"`
	SuggestedPrice       decimal.Decimal `json:"suggested_price"`
	DesiredMarginPercent decimal.Decimal `json:"desired_margin_percent"`
}

// UpdateCosteoRequest entrada para actualizar un costeo (campos opcionales).
type UpdateCosteoRequest struct {
	ProductName          *string          `json:"product_name" validate:"omitempty,min=1,max=200"`
	ProductCost          *decimal.Decimal `json:"product_cost"`
	ShippingCost         *decimal.Decimal `json:"shipping_cost"`
	OtherCosts           *decimal.Decimal `json:"other_costs"`
	SuggestedPrice       *decimal.Decimal `json:"suggested_price"`
	DesiredMarginPercent *decimal.Decimal `json:"desired_margin_percent"`
}

// CosteoResponse salida de un costeo.
type CosteoResponse struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"user_id"`
	ProductName          string          `json:"product_name"`
	ProductCost          decimal.Decimal `json:"product_cost"`
	ShippingCost         decimal.Decimal `json:"shipping_cost"`
	OtherCosts           decimal.Decimal `json:"other_costs"`
	SuggestedPrice       decimal.Decimal `json:"suggested_price"`
	NetProfitPerSale     decimal.Decimal `json:"net_profit_per_sale"`
	DesiredMarginPercent decimal.Decimal `json:"desired_margin_percent"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CosteoListResponse lista paginada de costeos.
type CosteoListResponse struct {
	Items []CosteoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
