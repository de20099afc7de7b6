package repository

import (
	"context"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// SubscriptionPlanRepository catálogo de planes (read-only para el gate;
// escritura solo en seed y administración).
type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *entity.SubscriptionPlan) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error)
	GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error)
	// ListActive devuelve planes activos; los planes se buscan por nombre,
	// nunca se duplican por tenant.
	ListActive(ctx context.Context) ([]*entity.SubscriptionPlan, error)
}
