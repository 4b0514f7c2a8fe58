package oferta

import (
	"context"

	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de ofertas atado a esa tx. La activación corre el conteo fresco
// y el insert dentro de la misma transacción para estrechar (no eliminar) la
// ventana de carrera entre activaciones concurrentes de la misma cuenta.
type TxRunner interface {
	Run(ctx context.Context, fn func(ofertaRepo repository.OfertaRepository) error) error
}

// OfertaPDFGenerator genera el "Resumen de Oferta" en PDF.
type OfertaPDFGenerator interface {
	GenerateOfertaPDF(ctx context.Context, oferta *entity.Oferta, costeo *entity.Costeo, owner *entity.User) ([]byte, error)
}

// FeedExporter serializa ofertas con sus costeos como feed para catálogos
// externos. costeos mapea costeo_id → costeo.
type FeedExporter interface {
	Export(ofertas []*entity.Oferta, costeos map[string]*entity.Costeo) ([]byte, error)
}
