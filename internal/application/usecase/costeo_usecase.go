package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

// CosteoUseCase CRUD de costeos de producto. La ganancia neta nunca se acepta
// del cliente: se recalcula en el servidor en cada escritura.
type CosteoUseCase struct {
	costeoRepo repository.CosteoRepository
}

func NewCosteoUseCase(costeoRepo repository.CosteoRepository) *CosteoUseCase {
	return &CosteoUseCase{costeoRepo: costeoRepo}
}

// Create guarda un costeo nuevo para el usuario autenticado.
func (uc *CosteoUseCase) Create(userID string, in dto.CreateCosteoRequest) (*dto.CosteoResponse, error) {
	if in.ProductName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductCost.IsNegative() || in.ShippingCost.IsNegative() ||
		in.OtherCosts.IsNegative() || in.SuggestedPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Costeo{
		ID:                   uuid.New().String(),
		UserID:               userID,
		ProductName:          in.ProductName,
		ProductCost:          in.ProductCost,
		ShippingCost:         in.ShippingCost,
		OtherCosts:           in.OtherCosts,
		SuggestedPrice:       in.SuggestedPrice,
		DesiredMarginPercent: in.DesiredMarginPercent,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	c.RecalcNetProfit()
	if err := uc.costeoRepo.Create(c); err != nil {
		return nil, err
	}
	return toCosteoResponse(c), nil
}

// GetByID retorna un costeo verificando que pertenezca al usuario.
func (uc *CosteoUseCase) GetByID(userID, costeoID string) (*dto.CosteoResponse, error) {
	c, err := uc.ownedCosteo(userID, costeoID)
	if err != nil {
		return nil, err
	}
	return toCosteoResponse(c), nil
}

// ListByUser lista los costeos del usuario con paginación.
func (uc *CosteoUseCase) ListByUser(userID string, page dto.PageRequest) (*dto.CosteoListResponse, error) {
	page.DefaultPage()
	items, err := uc.costeoRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CosteoResponse, 0, len(items))
	for _, c := range items {
		out = append(out, *toCosteoResponse(c))
	}
	return &dto.CosteoListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica cambios parciales y recalcula la ganancia neta.
func (uc *CosteoUseCase) Update(userID, costeoID string, in dto.UpdateCosteoRequest) (*dto.CosteoResponse, error) {
	c, err := uc.ownedCosteo(userID, costeoID)
	if err != nil {
		return nil, err
	}
	if in.ProductName != nil {
		if *in.ProductName == "" {
			return nil, domain.ErrInvalidInput
		}
		c.ProductName = *in.ProductName
	}
	if in.ProductCost != nil {
		c.ProductCost = *in.ProductCost
	}
	if in.ShippingCost != nil {
		c.ShippingCost = *in.ShippingCost
	}
	if in.OtherCosts != nil {
		c.OtherCosts = *in.OtherCosts
	}
	if in.SuggestedPrice != nil {
		c.SuggestedPrice = *in.SuggestedPrice
	}
	if in.DesiredMarginPercent != nil {
		c.DesiredMarginPercent = *in.DesiredMarginPercent
	}
	if c.ProductCost.IsNegative() || c.ShippingCost.IsNegative() ||
		c.OtherCosts.IsNegative() || c.SuggestedPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	c.RecalcNetProfit()
	c.UpdatedAt = time.Now()
	if err := uc.costeoRepo.Update(c); err != nil {
		return nil, err
	}
	return toCosteoResponse(c), nil
}

// Delete elimina un costeo del usuario.
func (uc *CosteoUseCase) Delete(userID, costeoID string) error {
	if _, err := uc.ownedCosteo(userID, costeoID); err != nil {
		return err
	}
	return uc.costeoRepo.Delete(costeoID)
}

// ownedCosteo carga el costeo y valida propiedad.
func (uc *CosteoUseCase) ownedCosteo(userID, costeoID string) (*entity.Costeo, error) {
	c, err := uc.costeoRepo.GetByID(costeoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func toCosteoResponse(c *entity.Costeo) *dto.CosteoResponse {
	return &dto.CosteoResponse{
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
