package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnlimitedLimit es el centinela de "sin límite" en los cupos de un plan.
const UnlimitedLimit = -1

// DefaultOffersLimit se aplica cuando el plan no define offers_limit.
// Conservador a propósito: un límite ausente nunca se interpreta como ilimitado.
const DefaultOffersLimit = 5

// Plan representa un plan de suscripción de la plataforma.
type Plan struct {
	ID           string
	Name         string
	MonthlyPrice decimal.Decimal // COP
	Limits       PlanLimits
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlanLimits cupos por plan. -1 = ilimitado (ver UnlimitedLimit).
type PlanLimits struct {
	OffersLimit  int `json:"offers_limit"`
	CosteosLimit int `json:"costeos_limit"`
}

// EffectiveOffersLimit devuelve el límite de ofertas a aplicar: el del plan,
// o DefaultOffersLimit si el plan es nil o no lo define (0 se trata como ausente).
func (p *Plan) EffectiveOffersLimit() int {
	if p == nil || p.Limits.OffersLimit == 0 {
		return DefaultOffersLimit
	}
	return p.Limits.OffersLimit
}
