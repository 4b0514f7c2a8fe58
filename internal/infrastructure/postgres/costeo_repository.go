package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

var _ repository.CosteoRepository = (*CosteoRepo)(nil)

// CosteoRepo implementación del puerto CosteoRepository sobre PostgreSQL.
type CosteoRepo struct {
	pool *pgxpool.Pool
}

// NewCosteoRepository construye el adaptador de persistencia para costeos.
func NewCosteoRepository(pool *pgxpool.Pool) *CosteoRepo {
	return &CosteoRepo{pool: pool}
}

const costeoColumns = `id, user_id, product_name, product_cost, shipping_cost, other_costs,
	suggested_price, net_profit_per_sale, desired_margin_percent, created_at, updated_at`

// Create persiste un costeo nuevo.
func (r *CosteoRepo) Create(c *entity.Costeo) error {
	query := `
		INSERT INTO costeos (` + costeoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.UserID, c.ProductName, c.ProductCost, c.ShippingCost, c.OtherCosts,
		c.SuggestedPrice, c.NetProfitPerSale, c.DesiredMarginPercent, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert costeo: %w", err)
	}
	return nil
}

// GetByID obtiene un costeo por ID.
func (r *CosteoRepo) GetByID(id string) (*entity.Costeo, error) {
	query := `SELECT ` + costeoColumns + ` FROM costeos WHERE id = $1`
	var c entity.Costeo
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.UserID, &c.ProductName, &c.ProductCost, &c.ShippingCost, &c.OtherCosts,
		&c.SuggestedPrice, &c.NetProfitPerSale, &c.DesiredMarginPercent, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get costeo: %w", err)
	}
	return &c, nil
}

// ListByUser lista los costeos del usuario, más recientes primero.
func (r *CosteoRepo) ListByUser(userID string, limit, offset int) ([]*entity.Costeo, error) {
	query := `SELECT ` + costeoColumns + `
		FROM costeos WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list costeos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Costeo
	for rows.Next() {
		var c entity.Costeo
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.ProductName, &c.ProductCost, &c.ShippingCost, &c.OtherCosts,
			&c.SuggestedPrice, &c.NetProfitPerSale, &c.DesiredMarginPercent, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan costeo: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un costeo existente.
func (r *CosteoRepo) Update(c *entity.Costeo) error {
	query := `
		UPDATE costeos SET product_name = $2, product_cost = $3, shipping_cost = $4, other_costs = $5,
			suggested_price = $6, net_profit_per_sale = $7, desired_margin_percent = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.ProductName, c.ProductCost, c.ShippingCost, c.OtherCosts,
		c.SuggestedPrice, c.NetProfitPerSale, c.DesiredMarginPercent, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update costeo: %w", err)
	}
	return nil
}

// Delete elimina un costeo por ID.
func (r *CosteoRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM costeos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete costeo: %w", err)
	}
	return nil
}
