package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/costealo/ofertas-api/internal/domain/entity"
)

// OfertaResponse salida de una oferta activada. Solo el config que coincide
// con Strategy viene poblado; los otros dos son null.
type OfertaResponse struct {
	ID       string              `json:"id"`
	UserID   string              `json:"user_id"`
	CosteoID string              `json:"costeo_id"`
	Strategy entity.StrategyType `json:"strategy"`

	Discount *entity.DiscountConfig `json:"discount,omitempty"`
	Bundle   *entity.BundleConfig   `json:"bundle,omitempty"`
	Gift     *entity.GiftConfig     `json:"gift,omitempty"`

	EstimatedProfit        decimal.Decimal `json:"estimated_profit"`
	EstimatedMarginPercent decimal.Decimal `json:"estimated_margin_percent"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OfertaListResponse lista paginada de ofertas.
type OfertaListResponse struct {
	Items []OfertaResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// PlanResponse salida de un plan de suscripción.
type PlanResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	MonthlyPrice decimal.Decimal   `json:"monthly_price"`
	Limits       entity.PlanLimits `json:"limits"`
}

// ToOfertaResponse mapea la entidad a su DTO de salida.
func ToOfertaResponse(o *entity.Oferta) *OfertaResponse {
	if o == nil {
		return nil
	}
	return &OfertaResponse{
		ID:                     o.ID,
		UserID:                 o.UserID,
		CosteoID:               o.CosteoID,
		Strategy:               o.Strategy,
		Discount:               o.Discount,
		Bundle:                 o.Bundle,
		Gift:                   o.Gift,
		EstimatedProfit:        o.EstimatedProfit,
		EstimatedMarginPercent: o.EstimatedMarginPercent,
		Status:                 o.Status,
		CreatedAt:              o.CreatedAt,
	}
}
