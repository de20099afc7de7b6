package usecase

import (
	"context"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// TenantService resuelve el tenant de un usuario autenticado: su membresía
// activa única con empresa y plan. Es la dependencia hoja del gate; el
// resultado se cachea en el contexto del request y nadie más vuelve a buscar.
type TenantService struct {
	cuRepo repository.CompanyUserRepository
}

// NewTenantService construye el resolver de tenant.
func NewTenantService(cuRepo repository.CompanyUserRepository) *TenantService {
	return &TenantService{cuRepo: cuRepo}
}

// Resolve devuelve la membresía activa del usuario.
// Propaga domain.ErrNoMembership (cero filas) y domain.ErrAmbiguousMembership
// (más de una fila, anomalía de integridad) sin enmascararlos.
func (s *TenantService) Resolve(ctx context.Context, userID string) (*entity.Membership, error) {
	if userID == "" {
		return nil, fmt.Errorf("tenant: userID vacío")
	}
	return s.cuRepo.FindActiveByUser(ctx, userID)
}
