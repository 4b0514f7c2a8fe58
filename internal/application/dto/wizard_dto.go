package dto

import (
	"github.com/shopspring/decimal"

	"github.com/costealo/ofertas-api/internal/domain/entity"
)

// SelectStrategyRequest paso 1: elegir estrategia.
type SelectStrategyRequest struct {
	Strategy entity.StrategyType `json:"strategy" validate:"required"`
}

// SelectCosteoRequest paso 2: elegir el costeo base.
type SelectCosteoRequest struct {
	CosteoID string `json:"costeo_id" validate:"required"`
}

// UpdateParamsRequest paso 3: editar parámetros de la estrategia activa.
// Solo se leen los campos de la estrategia seleccionada en la sesión.
type UpdateParamsRequest struct {
	// discount
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	// bundle
	Quantity      *int             `json:"quantity"`
	MarginPercent *decimal.Decimal `json:"margin_percent"`
	// gift
	GiftType    *string          `json:"gift_type"`
	GiftCost    *decimal.Decimal `json:"gift_cost"`
	Description *string          `json:"description"`
}

// WizardStateResponse estado observable de una sesión de wizard.
type WizardStateResponse struct {
	SessionID  string              `json:"session_id"`
	Step       int                 `json:"step"`
	StepName   string              `json:"step_name"`
	CanAdvance bool                `json:"can_advance"`
	Strategy   entity.StrategyType `json:"strategy,omitempty"`
	Costeo     *CosteoResponse     `json:"costeo,omitempty"`

	Discount *entity.DiscountConfig `json:"discount,omitempty"`
	Bundle   *entity.BundleConfig   `json:"bundle,omitempty"`
	Gift     *entity.GiftConfig     `json:"gift,omitempty"`
}
