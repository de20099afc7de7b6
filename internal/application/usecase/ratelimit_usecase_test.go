package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// fakeUsageRepo implementa repository.APIUsageRepository con un conteo fijo.
type fakeUsageRepo struct {
	count     int
	countErr  error
	lastSince time.Time
	created   []*entity.APIUsageLog
}

func (f *fakeUsageRepo) Create(_ context.Context, log *entity.APIUsageLog) error {
	f.created = append(f.created, log)
	return nil
}

func (f *fakeUsageRepo) CountSince(_ context.Context, _ string, since time.Time) (int, error) {
	f.lastSince = since
	return f.count, f.countErr
}

func TestHourlyLimitFor(t *testing.T) {
	assert.Equal(t, 100, usecase.HourlyLimitFor(entity.PlanTrial))
	assert.Equal(t, 500, usecase.HourlyLimitFor(entity.PlanBasic))
	assert.Equal(t, 2000, usecase.HourlyLimitFor(entity.PlanGrowth))
	assert.Equal(t, 10000, usecase.HourlyLimitFor(entity.PlanEnterprise))
	// Plan desconocido cae al techo del trial, nunca queda sin límite.
	assert.Equal(t, 100, usecase.HourlyLimitFor("legacy-gold"))
	assert.Equal(t, 100, usecase.HourlyLimitFor(""))
}

func TestRateLimit_AdmiteBajoElLimite(t *testing.T) {
	repo := &fakeUsageRepo{count: 42}
	svc := usecase.NewRateLimitService(repo)
	now := time.Date(2026, 6, 1, 10, 45, 30, 0, time.UTC)

	res, err := svc.Check(context.Background(), "company-1", entity.PlanTrial, now)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Limit)
	// Remaining descuenta la llamada que se está admitiendo.
	assert.Equal(t, 100-42-1, res.Remaining)
	assert.Equal(t, time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC), res.ResetAt)
	// El bucket es fijo: el conteo arranca en el inicio de la hora.
	assert.Equal(t, time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC), repo.lastSince)
}

// Llamada número limit (count = limit-1) se admite con Remaining 0;
// la siguiente (count = limit) se rechaza.
func TestRateLimit_Frontera(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 45, 0, 0, time.UTC)

	repo := &fakeUsageRepo{count: 9999}
	svc := usecase.NewRateLimitService(repo)
	res, err := svc.Check(context.Background(), "company-1", entity.PlanEnterprise, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	repo.count = 10000
	_, err = svc.Check(context.Background(), "company-1", entity.PlanEnterprise, now)
	var rle *domain.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, 10000, rle.Limit)
	assert.Equal(t, time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC), rle.ResetAt)
}

func TestRateLimit_ErrorDeConteoSePropaga(t *testing.T) {
	repo := &fakeUsageRepo{countErr: errors.New("db caída")}
	svc := usecase.NewRateLimitService(repo)

	_, err := svc.Check(context.Background(), "company-1", entity.PlanBasic, time.Now())
	require.Error(t, err)
	var rle *domain.RateLimitError
	assert.False(t, errors.As(err, &rle), "un fallo de DB no es un rechazo por límite")
}
