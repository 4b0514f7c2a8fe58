package repository

import "github.com/costealo/ofertas-api/internal/domain/entity"

// PlanRepository define el puerto de lectura de planes de suscripción.
// Los planes se administran fuera de este núcleo; aquí solo se consultan.
type PlanRepository interface {
	GetByID(id string) (*entity.Plan, error)
	List() ([]*entity.Plan, error)
}
