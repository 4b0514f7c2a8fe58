package repository

import "github.com/costealo/ofertas-api/internal/domain/entity"

// CosteoRepository define el puerto de persistencia para Costeo (DIP).
type CosteoRepository interface {
	Create(costeo *entity.Costeo) error
	GetByID(id string) (*entity.Costeo, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Costeo, error)
	Update(costeo *entity.Costeo) error
	Delete(id string) error
}
