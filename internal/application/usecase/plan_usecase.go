package usecase

import (
	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// PlanUseCase consultas de solo lectura sobre los planes de suscripción.
type PlanUseCase struct {
	planRepo repository.PlanRepository
}

func NewPlanUseCase(planRepo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{planRepo: planRepo}
}

// List retorna todos los planes disponibles.
func (uc *PlanUseCase) List() ([]dto.PlanResponse, error) {
	plans, err := uc.planRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

// GetByID retorna un plan por su identificador.
func (uc *PlanUseCase) GetByID(id string) (*dto.PlanResponse, error) {
	p, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPlanResponse(p)
	return &resp, nil
}

func toPlanResponse(p *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		MonthlyPrice: p.MonthlyPrice,
		Limits:       p.Limits,
	}
}
