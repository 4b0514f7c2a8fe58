package oferta

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/pricing"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// QuotaError rechazo de activación por cupo. Envuelve domain.ErrQuotaExceeded
// y carga el límite numérico del plan para el mensaje al usuario.
type QuotaError struct {
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("límite de ofertas del plan alcanzado (%d)", e.Limit)
}

// Unwrap permite errors.Is(err, domain.ErrQuotaExceeded).
func (e *QuotaError) Unwrap() error { return domain.ErrQuotaExceeded }

// ActivateUseCase coordina la activación: arma la oferta final desde el
// config de la estrategia activa, consulta el cupo con conteo fresco y
// persiste en un solo intento. Sin reintentos: ante fallo el wizard queda
// intacto y el usuario puede reenviar.
type ActivateUseCase struct {
	txRunner TxRunner
	planRepo repository.PlanRepository
}

// NewActivateUseCase construye el caso de uso.
func NewActivateUseCase(txRunner TxRunner, planRepo repository.PlanRepository) *ActivateUseCase {
	return &ActivateUseCase{txRunner: txRunner, planRepo: planRepo}
}

// Activate crea la oferta a partir de un wizard en el paso de resumen.
// Orden del protocolo: resumen → cupo (conteo fresco) → create; el rechazo de
// cupo ocurre antes de cualquier escritura. Conteo e insert comparten
// transacción.
func (uc *ActivateUseCase) Activate(ctx context.Context, user *entity.User, w *Wizard) (*dto.OfertaResponse, error) {
	if user == nil || w == nil {
		return nil, domain.ErrInvalidInput
	}
	if w.Step() != StepResumen {
		return nil, domain.ErrInvalidTransition
	}
	costeo := w.Costeo()
	if w.Strategy() == "" || costeo == nil {
		return nil, domain.ErrInvalidInput
	}

	oferta, err := assembleOferta(user.ID, w)
	if err != nil {
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(user.PlanID)
	if err != nil {
		return nil, fmt.Errorf("consultar plan: %w", err)
	}

	err = uc.txRunner.Run(ctx, func(ofertaRepo repository.OfertaRepository) error {
		// Conteo al momento de la activación, nunca cacheado del wizard.
		count, err := ofertaRepo.CountByUser(user.ID)
		if err != nil {
			return fmt.Errorf("contar ofertas: %w", err)
		}
		decision := CheckQuota(user, plan, count)
		if !decision.Allowed {
			return &QuotaError{Limit: decision.Limit}
		}
		return ofertaRepo.Create(oferta)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToOfertaResponse(oferta), nil
}

// assembleOferta construye la entidad final: solo el config de la estrategia
// activa más los dos escalares de resumen, redondeados a 2 decimales.
func assembleOferta(userID string, w *Wizard) (*entity.Oferta, error) {
	costeo := w.Costeo()
	now := time.Now()
	oferta := &entity.Oferta{
		ID:        uuid.New().String(),
		UserID:    userID,
		CosteoID:  costeo.ID,
		Strategy:  w.Strategy(),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch w.Strategy() {
	case entity.StrategyDiscount:
		cfg := w.DiscountConfig()
		oferta.Discount = &cfg
		oferta.EstimatedProfit = pricing.RoundMoney(cfg.NewProfit)
		oferta.EstimatedMarginPercent = pricing.RoundMoney(cfg.NewMarginPercent)

	case entity.StrategyBundle:
		cfg := w.BundleConfig()
		if len(cfg.PriceTable) == 0 {
			return nil, domain.ErrInvalidInput
		}
		oferta.Bundle = &cfg
		last := cfg.PriceTable[len(cfg.PriceTable)-1]
		oferta.EstimatedProfit = pricing.RoundMoney(last.TotalProfit)
		// La tabla del combo no trae columna de margen: se usa el margen
		// deseado del costeo como aproximación.
		oferta.EstimatedMarginPercent = pricing.RoundMoney(costeo.DesiredMarginPercent)

	case entity.StrategyGift:
		cfg := w.GiftConfig()
		oferta.Gift = &cfg
		oferta.EstimatedProfit = pricing.RoundMoney(cfg.NewProfit)
		margin := decimal.Zero
		if costeo.SuggestedPrice.GreaterThan(decimal.Zero) {
			margin = cfg.NewProfit.Div(costeo.SuggestedPrice).Mul(decimal.NewFromInt(100))
		}
		oferta.EstimatedMarginPercent = pricing.RoundMoney(margin)

	default:
		return nil, domain.ErrInvalidInput
	}
	return oferta, nil
}
