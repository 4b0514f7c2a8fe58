package oferta

import "github.com/costealo/ofertas-api/internal/domain/entity"

// QuotaDecision resultado de evaluar el cupo de ofertas de un usuario.
// Limit acompaña el rechazo para que el caller arme un mensaje accionable.
type QuotaDecision struct {
	Allowed bool
	Limit   int // entity.UnlimitedLimit cuando no aplica límite
}

// CheckQuota decide si el usuario puede crear una oferta más. Los roles admin
// y superadmin no tienen límite; para el resto aplica el offers_limit del
// plan (-1 = ilimitado; ausente = entity.DefaultOffersLimit). El conteo debe
// venir leído fresco del repositorio en el momento de la activación, nunca
// cacheado desde la apertura del wizard.
func CheckQuota(user *entity.User, plan *entity.Plan, currentOfferCount int) QuotaDecision {
	if user != nil && user.IsPrivileged() {
		return QuotaDecision{Allowed: true, Limit: entity.UnlimitedLimit}
	}
	limit := plan.EffectiveOffersLimit()
	if limit == entity.UnlimitedLimit {
		return QuotaDecision{Allowed: true, Limit: entity.UnlimitedLimit}
	}
	return QuotaDecision{Allowed: currentOfferCount < limit, Limit: limit}
}
