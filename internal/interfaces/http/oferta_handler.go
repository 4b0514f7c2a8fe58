package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/domain"
)

// OfertaHandler lecturas, borrado y exportaciones de ofertas activadas.
type OfertaHandler struct {
	queryUC *oferta.QueryUseCase
	pdfUC   *oferta.PDFUseCase
}

// NewOfertaHandler construye el handler.
func NewOfertaHandler(queryUC *oferta.QueryUseCase, pdfUC *oferta.PDFUseCase) *OfertaHandler {
	return &OfertaHandler{queryUC: queryUC, pdfUC: pdfUC}
}

// List lista las ofertas del usuario.
// GET /api/ofertas?limit=&offset=
func (h *OfertaHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.queryUC.List(userID, page)
	if err != nil {
		return ofertaError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una oferta del usuario.
// GET /api/ofertas/:id
func (h *OfertaHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.queryUC.Get(userID, id)
	if err != nil {
		return ofertaError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una oferta (libera cupo del plan).
// DELETE /api/ofertas/:id
func (h *OfertaHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	if err := h.queryUC.Delete(userID, id); err != nil {
		return ofertaError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF descarga el "Resumen de Oferta" en PDF.
// GET /api/ofertas/:id/pdf
func (h *OfertaHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	b, err := h.pdfUC.GenerateResumen(c.Context(), userID, id)
	if err != nil {
		return ofertaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-oferta-`+id+`.pdf"`)
	return c.Send(b)
}

// ExportXML descarga todas las ofertas del usuario como feed XML.
// GET /api/ofertas/export.xml
func (h *OfertaHandler) ExportXML(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	b, err := h.queryUC.ExportXML(userID)
	if err != nil {
		return ofertaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ofertas.xml"`)
	return c.Send(b)
}

// ListForUser lista las ofertas de cualquier usuario (solo admin/superadmin,
// el router aplica RequireRole).
// GET /api/admin/users/:id/ofertas
func (h *OfertaHandler) ListForUser(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if targetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.queryUC.List(targetID, page)
	if err != nil {
		return ofertaError(c, err)
	}
	return c.JSON(out)
}

// ofertaError mapea errores de dominio a respuestas HTTP.
func ofertaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "oferta no encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
