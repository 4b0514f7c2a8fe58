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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
// Los límites viven en una columna JSONB (limits) para poder agregar cupos
// nuevos sin migración de esquema.
type PlanRepo struct {
	pool *pgxpool.Pool
}

// NewPlanRepository construye el adaptador de lectura de planes.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

// GetByID obtiene un plan por ID.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `
		SELECT id, name, monthly_price, limits, created_at, updated_at
		FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.MonthlyPrice, &p.Limits, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// List retorna todos los planes ordenados por precio.
func (r *PlanRepo) List() ([]*entity.Plan, error) {
	query := `
		SELECT id, name, monthly_price, limits, created_at, updated_at
		FROM plans ORDER BY monthly_price ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.MonthlyPrice, &p.Limits, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
