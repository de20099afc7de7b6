// seedplans siembra (upsert idempotente) el catálogo canónico de planes de
// suscripción: trial, basic, growth y enterprise, con sus techos, precios en
// NGN y features tipadas.
//
// Uso: go run ./cmd/seedplans
// Lee la configuración de DB de las mismas env vars que la API.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/infrastructure/postgres"
	"github.com/tradelink-ng/edibridge-api/pkg/config"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	planRepo := postgres.NewSubscriptionPlanRepository(pool)
	now := time.Now()

	for _, plan := range canonicalPlans(cfg, now) {
		if err := planRepo.Create(ctx, plan); err != nil {
			log.Fatal().Err(err).Str("plan", plan.Name).Msg("sembrar plan")
		}
		log.Info().
			Str("plan", plan.Name).
			Str("price_ngn", plan.PriceNGN.StringFixed(2)).
			Int("max_users", plan.MaxUsers).
			Int("max_transactions_monthly", plan.MaxTransactionsMonthly).
			Msg("plan sembrado")
	}
}

// canonicalPlans el catálogo completo. Los IDs son nuevos en cada corrida pero
// el upsert es por nombre, así que las filas existentes conservan su ID.
func canonicalPlans(cfg *config.Config, now time.Time) []*entity.SubscriptionPlan {
	return []*entity.SubscriptionPlan{
		{
			ID:                     uuid.New().String(),
			Name:                   entity.PlanTrial,
			DisplayName:            "Prueba gratuita",
			PriceNGN:               decimal.Zero,
			MaxUsers:               cfg.Billing.TrialMaxUsers,
			MaxTransactionsMonthly: cfg.Billing.TrialMaxTransactions,
			Features: entity.FeatureSet{
				entity.FeatureBasicEDI:        entity.BoolFeature(true),
				entity.FeatureTradingPartners: entity.IntFeature(3),
				entity.FeatureReports:         entity.StringFeature("basic"),
				entity.FeatureSupport:         entity.StringFeature("email"),
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:                     uuid.New().String(),
			Name:                   entity.PlanBasic,
			DisplayName:            "Básico",
			PriceNGN:               decimal.NewFromInt(25000),
			MaxUsers:               5,
			MaxTransactionsMonthly: 500,
			Features: entity.FeatureSet{
				entity.FeatureBasicEDI:        entity.BoolFeature(true),
				entity.FeatureAPIAccess:       entity.BoolFeature(true),
				entity.FeatureSCBNIntegration: entity.BoolFeature(true),
				entity.FeatureCustomReports:   entity.BoolFeature(false),
				entity.FeatureSLAMonitoring:   entity.BoolFeature(false),
				entity.FeaturePrioritySupport: entity.BoolFeature(false),
				entity.FeatureTradingPartners: entity.IntFeature(10),
				entity.FeatureReports:         entity.StringFeature("basic"),
				entity.FeatureSupport:         entity.StringFeature("email"),
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:                     uuid.New().String(),
			Name:                   entity.PlanGrowth,
			DisplayName:            "Crecimiento",
			PriceNGN:               decimal.NewFromInt(75000),
			MaxUsers:               15,
			MaxTransactionsMonthly: 2000,
			Features: entity.FeatureSet{
				entity.FeatureBasicEDI:        entity.BoolFeature(true),
				entity.FeatureAdvancedEDI:     entity.BoolFeature(true),
				entity.FeatureAPIAccess:       entity.BoolFeature(true),
				entity.FeatureSCBNIntegration: entity.BoolFeature(true),
				entity.FeatureCustomReports:   entity.BoolFeature(true),
				entity.FeatureSLAMonitoring:   entity.BoolFeature(true),
				entity.FeaturePrioritySupport: entity.BoolFeature(true),
				entity.FeatureBulkOperations:  entity.BoolFeature(true),
				entity.FeatureTradingPartners: entity.IntFeature(50),
				entity.FeatureReports:         entity.StringFeature("advanced"),
				entity.FeatureSupport:         entity.StringFeature("priority"),
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:                     uuid.New().String(),
			Name:                   entity.PlanEnterprise,
			DisplayName:            "Empresarial",
			PriceNGN:               decimal.NewFromInt(200000),
			MaxUsers:               100,
			MaxTransactionsMonthly: 10000,
			Features: entity.FeatureSet{
				entity.FeatureBasicEDI:           entity.BoolFeature(true),
				entity.FeatureAdvancedEDI:        entity.BoolFeature(true),
				entity.FeaturePremiumEDI:         entity.BoolFeature(true),
				entity.FeatureAPIAccess:          entity.BoolFeature(true),
				entity.FeatureSCBNIntegration:    entity.BoolFeature(true),
				entity.FeatureCustomReports:      entity.BoolFeature(true),
				entity.FeatureSLAMonitoring:      entity.BoolFeature(true),
				entity.FeaturePrioritySupport:    entity.BoolFeature(true),
				entity.FeatureBulkOperations:     entity.BoolFeature(true),
				entity.FeatureWhiteLabeling:      entity.BoolFeature(true),
				entity.FeatureDedicatedSupport:   entity.BoolFeature(true),
				entity.FeatureCustomIntegrations: entity.BoolFeature(true),
				entity.FeatureTradingPartners:    entity.IntFeature(entity.Unlimited),
				entity.FeatureReports:            entity.StringFeature("premium"),
				entity.FeatureSupport:            entity.StringFeature("24/7"),
			},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
