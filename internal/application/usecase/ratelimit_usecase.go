package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// planHourlyLimits llamadas por hora permitidas según el nombre del plan.
// Un plan desconocido cae al techo del trial (fail closed, nunca abierto).
var planHourlyLimits = map[string]int{
	entity.PlanTrial:      100,
	entity.PlanBasic:      500,
	entity.PlanGrowth:     2000,
	entity.PlanEnterprise: 10000,
}

// HourlyLimitFor techo de llamadas/hora para un nombre de plan.
func HourlyLimitFor(planName string) int {
	if limit, ok := planHourlyLimits[planName]; ok {
		return limit
	}
	return planHourlyLimits[entity.PlanTrial]
}

// RateLimitResult resultado de una verificación de rate limit.
type RateLimitResult struct {
	Limit     int
	Remaining int       // cupo restante después de admitir esta llamada
	ResetAt   time.Time // inicio del siguiente bucket horario
}

// RateLimitService acota las llamadas API por tenant dentro del bucket horario
// vigente. El bucket es fijo, no deslizante: el timestamp truncado a la hora;
// una llamada a las 10:59 y otra a las 11:01 caen en buckets distintos.
//
// La verificación es leer-contar-decidir sobre APIUsageLog, sin incremento
// atómico: bajo concurrencia una ráfaga puede exceder transitoriamente el
// límite nominal. Es una cota blanda aceptada, no una garantía exacta.
type RateLimitService struct {
	usageRepo repository.APIUsageRepository
}

// NewRateLimitService construye el rate limiter.
func NewRateLimitService(usageRepo repository.APIUsageRepository) *RateLimitService {
	return &RateLimitService{usageRepo: usageRepo}
}

// Check cuenta las llamadas del bucket horario vigente y decide.
// Si count >= límite devuelve domain.RateLimitError; si no, el resultado con
// el cupo restante ya descontada la llamada actual.
func (s *RateLimitService) Check(ctx context.Context, companyID, planName string, now time.Time) (*RateLimitResult, error) {
	bucketStart := now.Truncate(time.Hour)
	resetAt := bucketStart.Add(time.Hour)
	limit := HourlyLimitFor(planName)

	count, err := s.usageRepo.CountSince(ctx, companyID, bucketStart)
	if err != nil {
		return nil, fmt.Errorf("contar llamadas del bucket: %w", err)
	}
	if count >= limit {
		return nil, &domain.RateLimitError{Limit: limit, ResetAt: resetAt}
	}
	return &RateLimitResult{
		Limit:     limit,
		Remaining: limit - count - 1,
		ResetAt:   resetAt,
	}, nil
}
