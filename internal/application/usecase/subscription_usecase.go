package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"github.com/tradelink-ng/edibridge-api/internal/domain/subscription"
)

// SubscriptionService casos de uso sobre planes y standing del tenant:
// catálogo de planes, upgrade y estado/uso de la empresa.
type SubscriptionService struct {
	planRepo    repository.SubscriptionPlanRepository
	companyRepo repository.CompanyRepository
	cuRepo      repository.CompanyUserRepository
	txRepo      repository.EDITransactionRepository
}

// NewSubscriptionService construye el servicio de suscripciones.
func NewSubscriptionService(
	planRepo repository.SubscriptionPlanRepository,
	companyRepo repository.CompanyRepository,
	cuRepo repository.CompanyUserRepository,
	txRepo repository.EDITransactionRepository,
) *SubscriptionService {
	return &SubscriptionService{
		planRepo:    planRepo,
		companyRepo: companyRepo,
		cuRepo:      cuRepo,
		txRepo:      txRepo,
	}
}

// ListPlans devuelve los planes activos contratables (excluye el trial:
// al trial solo se entra por registro, nunca por upgrade).
func (s *SubscriptionService) ListPlans(ctx context.Context) (*dto.PlansResponse, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.PlansResponse{Plans: []dto.PlanResponse{}}
	for _, p := range plans {
		if p.Name == entity.PlanTrial {
			continue
		}
		out.Plans = append(out.Plans, toPlanResponse(p))
	}
	return out, nil
}

// Upgrade cambia el plan de la empresa del solicitante. Solo ADMIN.
// Deja la suscripción ACTIVE y sin end_date (facturación mensual abierta).
func (s *SubscriptionService) Upgrade(ctx context.Context, m *entity.Membership, planID string) (*dto.UpgradeResponse, error) {
	if m.CompanyUser.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	company := m.Company
	company.SubscriptionPlanID = plan.ID
	company.SubscriptionStatus = entity.SubscriptionActive
	company.SubscriptionStart = &now
	company.SubscriptionEnd = nil
	company.UpdatedAt = now
	if err := s.companyRepo.UpdateSubscription(ctx, &company); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	return &dto.UpgradeResponse{
		Message:            "suscripción actualizada",
		SubscriptionPlan:   plan.DisplayName,
		SubscriptionStatus: entity.SubscriptionActive,
	}, nil
}

// CompanyStatus devuelve standing, días restantes de trial y uso corriente
// contra los techos del plan.
func (s *SubscriptionService) CompanyStatus(ctx context.Context, m *entity.Membership, now time.Time) (*dto.CompanyStatusResponse, error) {
	activeUsers, err := s.cuRepo.CountActiveByCompany(ctx, m.Company.ID)
	if err != nil {
		return nil, fmt.Errorf("contar usuarios: %w", err)
	}
	monthlyTx, err := s.txRepo.CountSince(ctx, m.Company.ID, FirstOfMonth(now))
	if err != nil {
		return nil, fmt.Errorf("contar transacciones: %w", err)
	}

	info := dto.CompanyStatusInfo{
		ID:                  m.Company.ID,
		Name:                m.Company.Name,
		SubscriptionPlan:    m.Plan.DisplayName,
		SubscriptionStatus:  m.Company.SubscriptionStatus,
		SubscriptionEndDate: m.Company.SubscriptionEnd,
	}
	if m.Company.SubscriptionStatus == entity.SubscriptionTrial {
		if days, ok := subscription.DaysRemaining(m.Company.SubscriptionEnd, now); ok {
			info.DaysRemaining = &days
		}
	}

	return &dto.CompanyStatusResponse{
		Company: info,
		Limits: dto.CompanyUsageLimits{
			MaxUsers:               m.Plan.MaxUsers,
			CurrentUsers:           activeUsers,
			MaxTransactionsMonthly: m.Plan.MaxTransactionsMonthly,
			CurrentTransactions:    monthlyTx,
			UsersAvailable:         m.Plan.MaxUsers - activeUsers,
			TransactionsAvailable:  m.Plan.MaxTransactionsMonthly - monthlyTx,
		},
		Features: FeaturesToMap(m.Plan.Features),
	}, nil
}

// FeaturesToMap serializa el FeatureSet tipado al shape JSON público
// {feature_name: bool|int|string}.
func FeaturesToMap(fs entity.FeatureSet) map[string]any {
	out := make(map[string]any, len(fs))
	for f, v := range fs {
		switch v.Kind {
		case entity.KindBool:
			out[string(f)] = v.Bool
		case entity.KindInt:
			out[string(f)] = v.Int
		case entity.KindString:
			out[string(f)] = v.Str
		}
	}
	return out
}

func toPlanResponse(p *entity.SubscriptionPlan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		DisplayName:            p.DisplayName,
		PriceNGN:               p.PriceNGN.StringFixed(2),
		MaxUsers:               p.MaxUsers,
		MaxTransactionsMonthly: p.MaxTransactionsMonthly,
		Features:               FeaturesToMap(p.Features),
	}
}
