package oferta

import (
	"fmt"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// QueryUseCase lecturas y borrado de ofertas ya activadas. Las ofertas no se
// editan: quien quiere otra configuración crea una oferta nueva con el wizard.
type QueryUseCase struct {
	ofertaRepo repository.OfertaRepository
	costeoRepo repository.CosteoRepository
	exporter   FeedExporter
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(ofertaRepo repository.OfertaRepository, costeoRepo repository.CosteoRepository, exporter FeedExporter) *QueryUseCase {
	return &QueryUseCase{ofertaRepo: ofertaRepo, costeoRepo: costeoRepo, exporter: exporter}
}

// List lista las ofertas del usuario con paginación.
func (uc *QueryUseCase) List(userID string, page dto.PageRequest) (*dto.OfertaListResponse, error) {
	page.DefaultPage()
	items, err := uc.ofertaRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfertaResponse, 0, len(items))
	for _, o := range items {
		out = append(out, *dto.ToOfertaResponse(o))
	}
	return &dto.OfertaListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get retorna una oferta del usuario.
func (uc *QueryUseCase) Get(userID, ofertaID string) (*dto.OfertaResponse, error) {
	o, err := uc.owned(userID, ofertaID)
	if err != nil {
		return nil, err
	}
	return dto.ToOfertaResponse(o), nil
}

// Delete elimina una oferta del usuario. Liberar cupo borrando es válido:
// el conteo fresco de la próxima activación lo refleja de inmediato.
func (uc *QueryUseCase) Delete(userID, ofertaID string) error {
	if _, err := uc.owned(userID, ofertaID); err != nil {
		return err
	}
	return uc.ofertaRepo.Delete(ofertaID)
}

// ExportXML serializa todas las ofertas del usuario como feed XML.
func (uc *QueryUseCase) ExportXML(userID string) ([]byte, error) {
	// Sin paginar: el cupo por plan mantiene el volumen acotado.
	ofertas, err := uc.ofertaRepo.ListByUser(userID, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("listar ofertas: %w", err)
	}
	costeos := make(map[string]*entity.Costeo, len(ofertas))
	for _, o := range ofertas {
		if _, ok := costeos[o.CosteoID]; ok {
			continue
		}
		c, err := uc.costeoRepo.GetByID(o.CosteoID)
		if err != nil {
			return nil, fmt.Errorf("cargar costeo %s: %w", o.CosteoID, err)
		}
		if c != nil {
			costeos[o.CosteoID] = c
		}
	}
	return uc.exporter.Export(ofertas, costeos)
}

func (uc *QueryUseCase) owned(userID, ofertaID string) (*entity.Oferta, error) {
	o, err := uc.ofertaRepo.GetByID(ofertaID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}
