package repository

import (
	"context"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// UpdateSubscription cambia plan/estado/fechas de suscripción en una sola escritura.
	UpdateSubscription(ctx context.Context, company *entity.Company) error
	// ListTrialsEndingOn devuelve empresas TRIAL activas cuyo end_date cae en la fecha dada.
	ListTrialsEndingOn(ctx context.Context, date string) ([]*entity.Company, error)
}
