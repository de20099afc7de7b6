package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.SubscriptionPlanRepository = (*SubscriptionPlanRepo)(nil)

// SubscriptionPlanRepo implementación de SubscriptionPlanRepository sobre PostgreSQL.
type SubscriptionPlanRepo struct {
	q Querier
}

// NewSubscriptionPlanRepository construye el adaptador del catálogo de planes.
func NewSubscriptionPlanRepository(q Querier) *SubscriptionPlanRepo {
	return &SubscriptionPlanRepo{q: q}
}

const planColumns = `id, name, display_name, price_ngn, max_users, max_transactions_monthly, features, is_active, created_at, updated_at`

// Create persiste un plan (seed y administración; nunca camino de request).
func (r *SubscriptionPlanRepo) Create(ctx context.Context, p *entity.SubscriptionPlan) error {
	if err := p.Features.Validate(); err != nil {
		return fmt.Errorf("plan %s: %w", p.Name, err)
	}
	features, err := json.Marshal(p.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	query := `
		INSERT INTO subscription_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO UPDATE
		   SET display_name = EXCLUDED.display_name,
		       price_ngn = EXCLUDED.price_ngn,
		       max_users = EXCLUDED.max_users,
		       max_transactions_monthly = EXCLUDED.max_transactions_monthly,
		       features = EXCLUDED.features,
		       is_active = EXCLUDED.is_active,
		       updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.Name, p.DisplayName, p.PriceNGN,
		p.MaxUsers, p.MaxTransactionsMonthly, features,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *SubscriptionPlanRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	p, err := scanPlan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

// GetByName obtiene un plan por nombre (trial, basic, growth, enterprise).
// Los planes son compartidos: se buscan por nombre, nunca se duplican por tenant.
func (r *SubscriptionPlanRepo) GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE name = $1`
	p, err := scanPlan(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by name: %w", err)
	}
	return p, nil
}

// ListActive devuelve los planes activos ordenados por precio.
func (r *SubscriptionPlanRepo) ListActive(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE is_active = true ORDER BY price_ngn`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPlan(row interface{ Scan(dest ...any) error }) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	var features []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.DisplayName, &p.PriceNGN,
		&p.MaxUsers, &p.MaxTransactionsMonthly, &features,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
	}
	return &p, nil
}
