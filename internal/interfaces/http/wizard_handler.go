package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/application/usecase"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// WizardHandler expone el wizard de creación de ofertas sobre sesiones en
// memoria. Cada operación toma el lock de la sesión vía SessionStore.With.
type WizardHandler struct {
	sessions   *oferta.SessionStore
	costeoRepo repository.CosteoRepository
	userUC     *usecase.UserUseCase
	activateUC *oferta.ActivateUseCase
}

// NewWizardHandler construye el handler.
func NewWizardHandler(
	sessions *oferta.SessionStore,
	costeoRepo repository.CosteoRepository,
	userUC *usecase.UserUseCase,
	activateUC *oferta.ActivateUseCase,
) *WizardHandler {
	return &WizardHandler{
		sessions:   sessions,
		costeoRepo: costeoRepo,
		userUC:     userUC,
		activateUC: activateUC,
	}
}

// Start abre una sesión de wizard nueva en el paso 1.
// POST /api/wizard
func (h *WizardHandler) Start(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sid := h.sessions.Start(userID)
	var state dto.WizardStateResponse
	_ = h.sessions.With(sid, userID, func(w *oferta.Wizard) error {
		state = wizardState(sid, w)
		return nil
	})
	return c.Status(fiber.StatusCreated).JSON(state)
}

// State devuelve el estado observable de la sesión.
// GET /api/wizard/:sid
func (h *WizardHandler) State(c *fiber.Ctx) error {
	return h.withSession(c, func(*fiber.Ctx, *oferta.Wizard) error { return nil })
}

// SelectStrategy fija la estrategia (paso 1).
// PUT /api/wizard/:sid/estrategia
func (h *WizardHandler) SelectStrategy(c *fiber.Ctx) error {
	var in dto.SelectStrategyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.withSession(c, func(_ *fiber.Ctx, w *oferta.Wizard) error {
		return w.SelectStrategy(in.Strategy)
	})
}

// SelectCosteo fija el costeo base (paso 2). Carga el costeo del usuario y
// el wizard guarda un snapshot.
// PUT /api/wizard/:sid/costeo
func (h *WizardHandler) SelectCosteo(c *fiber.Ctx) error {
	var in dto.SelectCosteoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID := GetUserID(c)
	costeo, err := h.costeoRepo.GetByID(in.CosteoID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if costeo == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "costeo no encontrado"})
	}
	if costeo.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el costeo pertenece a otro usuario"})
	}
	return h.withSession(c, func(_ *fiber.Ctx, w *oferta.Wizard) error {
		return w.SelectCosteo(costeo)
	})
}

// UpdateParams edita los parámetros de la estrategia activa (paso 3).
// Solo se leen los campos que correspondan a esa estrategia.
// PUT /api/wizard/:sid/parametros
func (h *WizardHandler) UpdateParams(c *fiber.Ctx) error {
	var in dto.UpdateParamsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.withSession(c, func(_ *fiber.Ctx, w *oferta.Wizard) error {
		switch w.Strategy() {
		case entity.StrategyDiscount:
			if in.DiscountPercent == nil {
				return domain.ErrInvalidInput
			}
			return w.SetDiscountPercent(*in.DiscountPercent)
		case entity.StrategyBundle:
			cfg := w.BundleConfig()
			quantity, margin := cfg.Quantity, cfg.MarginPercent
			if in.Quantity != nil {
				quantity = *in.Quantity
			}
			if in.MarginPercent != nil {
				margin = *in.MarginPercent
			}
			return w.SetBundleParams(quantity, margin)
		case entity.StrategyGift:
			cfg := w.GiftConfig()
			giftType, giftCost, desc := cfg.GiftType, cfg.GiftCost, cfg.Description
			if in.GiftType != nil {
				giftType = *in.GiftType
			}
			if in.GiftCost != nil {
				giftCost = *in.GiftCost
			}
			if in.Description != nil {
				desc = *in.Description
			}
			return w.SetGiftParams(giftType, giftCost, desc)
		default:
			return domain.ErrInvalidInput
		}
	})
}

// Next avanza al siguiente paso.
// POST /api/wizard/:sid/siguiente
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	return h.withSession(c, func(_ *fiber.Ctx, w *oferta.Wizard) error {
		return w.Next()
	})
}

// Back retrocede un paso.
// POST /api/wizard/:sid/atras
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	return h.withSession(c, func(_ *fiber.Ctx, w *oferta.Wizard) error {
		return w.Back()
	})
}

// Activate crea la oferta desde el paso de resumen y cierra la sesión.
// POST /api/wizard/:sid/activar
func (h *WizardHandler) Activate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	sid := c.Params("sid")
	if userID == "" || sid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	// Rol y plan autoritativos desde la DB, no del token (pudo cambiar).
	user, err := h.userUC.Load(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
	}

	var out *dto.OfertaResponse
	err = h.sessions.With(sid, userID, func(w *oferta.Wizard) error {
		out, err = h.activateUC.Activate(c.Context(), user, w)
		return err
	})
	if err != nil {
		var qe *oferta.QuotaError
		if errors.As(err, &qe) {
			limit := qe.Limit
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "QUOTA_EXCEEDED",
				Message: "límite de ofertas del plan alcanzado",
				Limit:   &limit,
			})
		}
		return wizardError(c, err)
	}
	// Éxito: la sesión terminó su ciclo de vida.
	h.sessions.Close(sid)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel cierra la sesión sin activar.
// DELETE /api/wizard/:sid
func (h *WizardHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	sid := c.Params("sid")
	err := h.sessions.With(sid, userID, func(*oferta.Wizard) error { return nil })
	if err != nil {
		return wizardError(c, err)
	}
	h.sessions.Close(sid)
	return c.SendStatus(fiber.StatusNoContent)
}

// withSession ejecuta op bajo el lock de la sesión y responde con el estado
// resultante del wizard.
func (h *WizardHandler) withSession(c *fiber.Ctx, op func(*fiber.Ctx, *oferta.Wizard) error) error {
	userID := GetUserID(c)
	sid := c.Params("sid")
	if userID == "" || sid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var state dto.WizardStateResponse
	err := h.sessions.With(sid, userID, func(w *oferta.Wizard) error {
		if err := op(c, w); err != nil {
			return err
		}
		state = wizardState(sid, w)
		return nil
	})
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(state)
}

// wizardState proyecta el wizard a su DTO. Solo expone el config de la
// estrategia activa; los demás no le importan al cliente.
func wizardState(sid string, w *oferta.Wizard) dto.WizardStateResponse {
	state := dto.WizardStateResponse{
		SessionID:  sid,
		Step:       int(w.Step()),
		StepName:   w.Step().String(),
		CanAdvance: w.CanAdvance(),
		Strategy:   w.Strategy(),
	}
	if c := w.Costeo(); c != nil {
		state.Costeo = &dto.CosteoResponse{
			ID:                   c.ID,
			UserID:               c.UserID,
			ProductName:          c.ProductName,
			ProductCost:          c.ProductCost,
			ShippingCost:         c.ShippingCost,
			OtherCosts:           c.OtherCosts,
			SuggestedPrice:       c.SuggestedPrice,
			NetProfitPerSale:     c.NetProfitPerSale,
			DesiredMarginPercent: c.DesiredMarginPercent,
			CreatedAt:            c.CreatedAt,
			UpdatedAt:            c.UpdatedAt,
		}
	}
	if w.Step() >= oferta.StepConstructor {
		switch w.Strategy() {
		case entity.StrategyDiscount:
			cfg := w.DiscountConfig()
			state.Discount = &cfg
		case entity.StrategyBundle:
			cfg := w.BundleConfig()
			state.Bundle = &cfg
		case entity.StrategyGift:
			cfg := w.GiftConfig()
			state.Gift = &cfg
		}
	}
	return state
}

// wizardError mapea errores del wizard a respuestas HTTP.
func wizardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión no encontrada o expirada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la sesión pertenece a otro usuario"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "operación no permitida en el paso actual"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
