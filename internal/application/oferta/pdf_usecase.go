package oferta

import (
	"context"
	"fmt"

	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// PDFUseCase genera el "Resumen de Oferta" en PDF para una oferta activada.
type PDFUseCase struct {
	ofertaRepo repository.OfertaRepository
	costeoRepo repository.CosteoRepository
	userRepo   repository.UserRepository
	generator  OfertaPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	ofertaRepo repository.OfertaRepository,
	costeoRepo repository.CosteoRepository,
	userRepo repository.UserRepository,
	generator OfertaPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		ofertaRepo: ofertaRepo,
		costeoRepo: costeoRepo,
		userRepo:   userRepo,
		generator:  generator,
	}
}

// GenerateResumen carga la oferta (del usuario), su costeo y el dueño, y
// delega en el generador. Devuelve los bytes del PDF.
func (uc *PDFUseCase) GenerateResumen(ctx context.Context, userID, ofertaID string) ([]byte, error) {
	oferta, err := uc.ofertaRepo.GetByID(ofertaID)
	if err != nil {
		return nil, fmt.Errorf("cargar oferta: %w", err)
	}
	if oferta == nil {
		return nil, domain.ErrNotFound
	}
	if oferta.UserID != userID {
		return nil, domain.ErrForbidden
	}
	costeo, err := uc.costeoRepo.GetByID(oferta.CosteoID)
	if err != nil {
		return nil, fmt.Errorf("cargar costeo: %w", err)
	}
	if costeo == nil {
		// El costeo se borró después de activar la oferta.
		return nil, domain.ErrNotFound
	}
	owner, err := uc.userRepo.GetByID(oferta.UserID)
	if err != nil {
		return nil, fmt.Errorf("cargar usuario: %w", err)
	}
	return uc.generator.GenerateOfertaPDF(ctx, oferta, costeo, owner)
}
