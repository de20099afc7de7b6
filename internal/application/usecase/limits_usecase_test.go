package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// fakeTxCounter implementa repository.EDITransactionRepository; solo
// CountSince es relevante para estos tests.
type fakeTxCounter struct {
	count     int
	lastSince time.Time
}

func (f *fakeTxCounter) Create(context.Context, *entity.EDITransaction) error { return nil }
func (f *fakeTxCounter) GetByID(context.Context, string, string) (*entity.EDITransaction, error) {
	return nil, nil
}
func (f *fakeTxCounter) ListByCompany(context.Context, string, int, int) ([]*entity.EDITransaction, error) {
	return nil, nil
}
func (f *fakeTxCounter) CountSince(_ context.Context, _ string, since time.Time) (int, error) {
	f.lastSince = since
	return f.count, nil
}

// fakeMemberCounter implementa repository.CompanyUserRepository.
type fakeMemberCounter struct {
	count int
}

func (f *fakeMemberCounter) Create(context.Context, *entity.CompanyUser) error { return nil }
func (f *fakeMemberCounter) GetByID(context.Context, string) (*entity.CompanyUser, error) {
	return nil, nil
}
func (f *fakeMemberCounter) FindActiveByUser(context.Context, string) (*entity.Membership, error) {
	return nil, domain.ErrNoMembership
}
func (f *fakeMemberCounter) CountActiveByCompany(context.Context, string) (int, error) {
	return f.count, nil
}
func (f *fakeMemberCounter) ListByCompany(context.Context, string, int, int) ([]*entity.CompanyUser, error) {
	return nil, nil
}
func (f *fakeMemberCounter) Deactivate(context.Context, string) error          { return nil }
func (f *fakeMemberCounter) Update(context.Context, *entity.CompanyUser) error { return nil }

// fakePartnerCounter implementa repository.TradingPartnerRepository.
type fakePartnerCounter struct {
	count int
}

func (f *fakePartnerCounter) Create(context.Context, *entity.TradingPartner) error { return nil }
func (f *fakePartnerCounter) GetByID(context.Context, string, string) (*entity.TradingPartner, error) {
	return nil, nil
}
func (f *fakePartnerCounter) Update(context.Context, *entity.TradingPartner) error { return nil }
func (f *fakePartnerCounter) ListByCompany(context.Context, string, int, int) ([]*entity.TradingPartner, error) {
	return nil, nil
}
func (f *fakePartnerCounter) CountActiveByCompany(context.Context, string) (int, error) {
	return f.count, nil
}
func (f *fakePartnerCounter) Deactivate(context.Context, string, string) error { return nil }

func membershipWithPlan(plan entity.SubscriptionPlan) *entity.Membership {
	plan.IsActive = true
	return &entity.Membership{
		CompanyUser: entity.CompanyUser{ID: "cu-1", CompanyID: "company-1", Role: entity.RoleAdmin, IsActive: true},
		Company:     entity.Company{ID: "company-1", SubscriptionStatus: entity.SubscriptionActive, IsActive: true},
		Plan:        plan,
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := usecase.FirstOfMonth(time.Date(2026, 6, 17, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), got)

	// 1° del mes a medianoche ya es el ancla.
	anchor := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, anchor, usecase.FirstOfMonth(anchor))
}

func TestTransactionQuota_VentanaMesCalendario(t *testing.T) {
	txRepo := &fakeTxCounter{count: 10}
	svc := usecase.NewLimitService(txRepo, &fakeMemberCounter{}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxTransactionsMonthly: 500})

	now := time.Date(2026, 6, 17, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CheckTransactionQuota(context.Background(), m, now))
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), txRepo.lastSince,
		"el conteo debe anclarse al primer día del mes calendario, no a 30 días móviles")
}

func TestTransactionQuota_TechoAlcanzado(t *testing.T) {
	svc := usecase.NewLimitService(&fakeTxCounter{count: 500}, &fakeMemberCounter{}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxTransactionsMonthly: 500})

	err := svc.CheckTransactionQuota(context.Background(), m, time.Now())
	var qe *domain.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, domain.QuotaTransactions, qe.Resource)
	assert.Equal(t, 500, qe.Ceiling)
}

func TestTransactionQuota_UltimoCupoPasa(t *testing.T) {
	svc := usecase.NewLimitService(&fakeTxCounter{count: 499}, &fakeMemberCounter{}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxTransactionsMonthly: 500})
	assert.NoError(t, svc.CheckTransactionQuota(context.Background(), m, time.Now()))
}

func TestTransactionQuota_UnlimitedNoConsulta(t *testing.T) {
	txRepo := &fakeTxCounter{count: 1_000_000}
	svc := usecase.NewLimitService(txRepo, &fakeMemberCounter{}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxTransactionsMonthly: entity.Unlimited})
	assert.NoError(t, svc.CheckTransactionQuota(context.Background(), m, time.Now()))
}

func TestUserQuota_TechoAlcanzado(t *testing.T) {
	svc := usecase.NewLimitService(&fakeTxCounter{}, &fakeMemberCounter{count: 5}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxUsers: 5})

	err := svc.CheckUserQuota(context.Background(), m)
	var qe *domain.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, domain.QuotaUsers, qe.Resource)
	assert.Equal(t, 5, qe.Ceiling)
}

func TestUserQuota_BajoElTechoYUnlimited(t *testing.T) {
	svc := usecase.NewLimitService(&fakeTxCounter{}, &fakeMemberCounter{count: 4}, &fakePartnerCounter{})
	m := membershipWithPlan(entity.SubscriptionPlan{MaxUsers: 5})
	assert.NoError(t, svc.CheckUserQuota(context.Background(), m))

	m = membershipWithPlan(entity.SubscriptionPlan{MaxUsers: entity.Unlimited})
	assert.NoError(t, svc.CheckUserQuota(context.Background(), m))
}

func TestPartnerQuota_FeatureInt(t *testing.T) {
	svc := usecase.NewLimitService(&fakeTxCounter{}, &fakeMemberCounter{}, &fakePartnerCounter{count: 10})

	// Feature presente con tope alcanzado.
	m := membershipWithPlan(entity.SubscriptionPlan{
		Features: entity.FeatureSet{entity.FeatureTradingPartners: entity.IntFeature(10)},
	})
	err := svc.CheckPartnerQuota(context.Background(), m)
	var qe *domain.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 10, qe.Ceiling)

	// Feature -1 = sin tope.
	m = membershipWithPlan(entity.SubscriptionPlan{
		Features: entity.FeatureSet{entity.FeatureTradingPartners: entity.IntFeature(entity.Unlimited)},
	})
	assert.NoError(t, svc.CheckPartnerQuota(context.Background(), m))

	// Feature ausente = sin tope.
	m = membershipWithPlan(entity.SubscriptionPlan{Features: entity.FeatureSet{}})
	assert.NoError(t, svc.CheckPartnerQuota(context.Background(), m))
}
