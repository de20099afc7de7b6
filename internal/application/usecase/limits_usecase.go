package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"github.com/tradelink-ng/edibridge-api/internal/domain/subscription"
)

// LimitService verifica los techos de recursos del plan antes de admitir
// operaciones de creación. Todas las verificaciones son leer-contar-decidir,
// sin reserva transaccional: dos creaciones concurrentes pueden pasar ambas.
// Cota blanda documentada; un tope duro requeriría un incremento atómico en
// la capa de storage.
type LimitService struct {
	txRepo      repository.EDITransactionRepository
	cuRepo      repository.CompanyUserRepository
	partnerRepo repository.TradingPartnerRepository
}

// NewLimitService construye el verificador de techos.
func NewLimitService(
	txRepo repository.EDITransactionRepository,
	cuRepo repository.CompanyUserRepository,
	partnerRepo repository.TradingPartnerRepository,
) *LimitService {
	return &LimitService{txRepo: txRepo, cuRepo: cuRepo, partnerRepo: partnerRepo}
}

// FirstOfMonth primer día del mes de t, a medianoche. Ancla de la ventana del
// techo mensual de transacciones: mes calendario, no 30 días móviles. La
// ventana se resetea cada mes sin mirar el aniversario de facturación del
// tenant (comportamiento heredado y de negocio; no "corregir").
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// CheckTransactionQuota rechaza con domain.QuotaError si la empresa ya alcanzó
// max_transactions_monthly en el mes calendario en curso. Ceiling -1 = sin tope.
func (s *LimitService) CheckTransactionQuota(ctx context.Context, m *entity.Membership, now time.Time) error {
	max := m.Plan.MaxTransactionsMonthly
	if max == entity.Unlimited {
		return nil
	}
	count, err := s.txRepo.CountSince(ctx, m.Company.ID, FirstOfMonth(now))
	if err != nil {
		return fmt.Errorf("contar transacciones del mes: %w", err)
	}
	if count >= max {
		return &domain.QuotaError{Resource: domain.QuotaTransactions, Ceiling: max}
	}
	return nil
}

// CheckUserQuota rechaza con domain.QuotaError si la empresa ya tiene
// max_users membresías activas. Solo se evalúa al invitar/crear; nunca se
// aplica retroactivamente a tenants que quedaron por encima tras un downgrade.
func (s *LimitService) CheckUserQuota(ctx context.Context, m *entity.Membership) error {
	max := m.Plan.MaxUsers
	if max == entity.Unlimited {
		return nil
	}
	count, err := s.cuRepo.CountActiveByCompany(ctx, m.Company.ID)
	if err != nil {
		return fmt.Errorf("contar usuarios activos: %w", err)
	}
	if count >= max {
		return &domain.QuotaError{Resource: domain.QuotaUsers, Ceiling: max}
	}
	return nil
}

// CheckPartnerQuota aplica el feature numérico trading_partners del plan al
// crear un socio comercial. Feature ausente o valor -1 = sin tope.
func (s *LimitService) CheckPartnerQuota(ctx context.Context, m *entity.Membership) error {
	v, ok := subscription.FeatureValue(&m.Plan, entity.FeatureTradingPartners)
	if !ok || v.Kind != entity.KindInt || v.Int == entity.Unlimited {
		return nil
	}
	count, err := s.partnerRepo.CountActiveByCompany(ctx, m.Company.ID)
	if err != nil {
		return fmt.Errorf("contar partners activos: %w", err)
	}
	if count >= v.Int {
		return &domain.QuotaError{Resource: domain.QuotaPartners, Ceiling: v.Int}
	}
	return nil
}
