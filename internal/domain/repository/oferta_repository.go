package repository

import "github.com/costealo/ofertas-api/internal/domain/entity"

// OfertaRepository define el puerto de persistencia para Oferta (DIP).
// CountByUser es la lectura fresca que usa la guardia de cupo en la
// activación; debe reflejar el estado actual, nunca un conteo cacheado.
type OfertaRepository interface {
	Create(oferta *entity.Oferta) error
	GetByID(id string) (*entity.Oferta, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Oferta, error)
	CountByUser(userID string) (int, error)
	Delete(id string) error
}
