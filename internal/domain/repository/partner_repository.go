package repository

import (
	"context"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// TradingPartnerRepository puerto de persistencia para socios comerciales.
type TradingPartnerRepository interface {
	Create(ctx context.Context, p *entity.TradingPartner) error
	GetByID(ctx context.Context, companyID, id string) (*entity.TradingPartner, error)
	Update(ctx context.Context, p *entity.TradingPartner) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.TradingPartner, error)
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
	// Deactivate baja lógica del partner.
	Deactivate(ctx context.Context, companyID, id string) error
}
