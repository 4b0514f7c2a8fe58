package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
)

var _ repository.OfertaRepository = (*OfertaRepo)(nil)

// OfertaRepo implementación del puerto OfertaRepository sobre PostgreSQL
// (usable con pool o tx). El config de la estrategia se guarda como JSONB en
// una sola columna: el discriminador es strategy y el shape del JSON cambia
// con él, igual que la unión en la entidad.
type OfertaRepo struct {
	q Querier
}

// NewOfertaRepository construye el adaptador de persistencia para ofertas.
// Pasar pool o tx (Querier); la activación siempre pasa la tx.
func NewOfertaRepository(q Querier) *OfertaRepo {
	return &OfertaRepo{q: q}
}

// Create persiste una oferta activada.
func (r *OfertaRepo) Create(o *entity.Oferta) error {
	cfg, err := marshalConfig(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ofertas (id, user_id, costeo_id, strategy, config, estimated_profit, estimated_margin_percent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		o.ID, o.UserID, o.CosteoID, o.Strategy, cfg,
		o.EstimatedProfit, o.EstimatedMarginPercent, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert oferta: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID.
func (r *OfertaRepo) GetByID(id string) (*entity.Oferta, error) {
	query := `
		SELECT id, user_id, costeo_id, strategy, config, estimated_profit, estimated_margin_percent, status, created_at, updated_at
		FROM ofertas WHERE id = $1`
	o, err := scanOferta(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oferta: %w", err)
	}
	return o, nil
}

// ListByUser lista las ofertas del usuario, más recientes primero.
func (r *OfertaRepo) ListByUser(userID string, limit, offset int) ([]*entity.Oferta, error) {
	query := `
		SELECT id, user_id, costeo_id, strategy, config, estimated_profit, estimated_margin_percent, status, created_at, updated_at
		FROM ofertas WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ofertas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Oferta
	for rows.Next() {
		o, err := scanOferta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan oferta: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByUser cuenta las ofertas del usuario. La guardia de cupo lo llama
// dentro de la transacción de activación para que el conteo sea fresco.
func (r *OfertaRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM ofertas WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ofertas: %w", err)
	}
	return n, nil
}

// Delete elimina una oferta por ID.
func (r *OfertaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ofertas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete oferta: %w", err)
	}
	return nil
}

// marshalConfig serializa el config de la estrategia activa de la unión.
func marshalConfig(o *entity.Oferta) ([]byte, error) {
	var v any
	switch o.Strategy {
	case entity.StrategyDiscount:
		v = o.Discount
	case entity.StrategyBundle:
		v = o.Bundle
	case entity.StrategyGift:
		v = o.Gift
	default:
		return nil, fmt.Errorf("estrategia desconocida: %q", o.Strategy)
	}
	if v == nil {
		return nil, fmt.Errorf("oferta %s sin config para la estrategia %s", o.ID, o.Strategy)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return b, nil
}

// scanOferta lee una fila y rehidrata la unión según el discriminador.
func scanOferta(row pgx.Row) (*entity.Oferta, error) {
	var o entity.Oferta
	var cfg []byte
	err := row.Scan(
		&o.ID, &o.UserID, &o.CosteoID, &o.Strategy, &cfg,
		&o.EstimatedProfit, &o.EstimatedMarginPercent, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	switch o.Strategy {
	case entity.StrategyDiscount:
		o.Discount = &entity.DiscountConfig{}
		err = json.Unmarshal(cfg, o.Discount)
	case entity.StrategyBundle:
		o.Bundle = &entity.BundleConfig{}
		err = json.Unmarshal(cfg, o.Bundle)
	case entity.StrategyGift:
		o.Gift = &entity.GiftConfig{}
		err = json.Unmarshal(cfg, o.Gift)
	default:
		err = fmt.Errorf("estrategia desconocida en fila: %q", o.Strategy)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
