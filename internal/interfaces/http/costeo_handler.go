package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/application/usecase"
	"github.com/costealo/ofertas-api/internal/domain"
)

// CosteoHandler maneja el CRUD de costeos (protegido).
type CosteoHandler struct {
	uc *usecase.CosteoUseCase
}

// NewCosteoHandler construye el handler.
func NewCosteoHandler(uc *usecase.CosteoUseCase) *CosteoHandler {
	return &CosteoHandler{uc: uc}
}

// Create guarda un costeo nuevo.
// POST /api/costeos
func (h *CosteoHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCosteoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(userID, in)
	if err != nil {
		return costeoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los costeos del usuario.
// GET /api/costeos?limit=&offset=
func (h *CosteoHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByUser(userID, page)
	if err != nil {
		return costeoError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un costeo del usuario.
// GET /api/costeos/:id
func (h *CosteoHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.uc.GetByID(userID, id)
	if err != nil {
		return costeoError(c, err)
	}
	return c.JSON(out)
}

// Update aplica cambios parciales a un costeo.
// PUT /api/costeos/:id
func (h *CosteoHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	var in dto.UpdateCosteoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(userID, id, in)
	if err != nil {
		return costeoError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un costeo del usuario.
// DELETE /api/costeos/:id
func (h *CosteoHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	if err := h.uc.Delete(userID, id); err != nil {
		return costeoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// costeoError mapea errores de dominio a respuestas HTTP.
func costeoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "costeo no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
