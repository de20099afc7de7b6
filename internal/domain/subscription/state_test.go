package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/subscription"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluate — precedencia de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_SuspendedGanaSiempre(t *testing.T) {
	// SUSPENDED con trial vencido: gana SUSPENDED, la precedencia es estricta.
	state := subscription.Evaluate(entity.SubscriptionSuspended, datePtr(2026, 1, 1), date(2026, 6, 1))
	assert.Equal(t, subscription.StateSuspended, state)
}

func TestEvaluate_CancelledAntesQueExpiracion(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionCancelled, datePtr(2026, 1, 1), date(2026, 6, 1))
	assert.Equal(t, subscription.StateCancelled, state)
}

func TestEvaluate_TrialVigente(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionTrial, datePtr(2026, 6, 15), date(2026, 6, 1))
	assert.Equal(t, subscription.StateValid, state)
}

func TestEvaluate_TrialVencidoAyer(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionTrial, datePtr(2026, 5, 31), date(2026, 6, 1))
	assert.Equal(t, subscription.StateTrialExpired, state)
}

// La expiración es estricta: end_date == hoy sigue siendo VALID todo el día.
func TestEvaluate_TrialVenceHoy_SigueValido(t *testing.T) {
	end := time.Date(2026, 6, 1, 0, 0, 1, 0, time.UTC)
	now := time.Date(2026, 6, 1, 23, 59, 59, 0, time.UTC)
	state := subscription.Evaluate(entity.SubscriptionTrial, &end, now)
	assert.Equal(t, subscription.StateValid, state)
}

func TestEvaluate_TrialSinFecha_NoVence(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionTrial, nil, date(2030, 1, 1))
	assert.Equal(t, subscription.StateValid, state)
}

func TestEvaluate_ActiveConFechaPasada_NoVence(t *testing.T) {
	// La expiración por fecha solo aplica a TRIAL: una suscripción ACTIVE con
	// end_date vieja sigue siendo válida (la suspensión la decide facturación).
	state := subscription.Evaluate(entity.SubscriptionActive, datePtr(2020, 1, 1), date(2026, 6, 1))
	assert.Equal(t, subscription.StateValid, state)
}

func TestEvaluate_CruceDeMes(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionTrial, datePtr(2026, 1, 31), date(2026, 2, 1))
	assert.Equal(t, subscription.StateTrialExpired, state)
}

func TestEvaluate_CruceDeAnio(t *testing.T) {
	state := subscription.Evaluate(entity.SubscriptionTrial, datePtr(2025, 12, 31), date(2026, 1, 1))
	assert.Equal(t, subscription.StateTrialExpired, state)
}

func TestEvaluate_EstadoDesconocido_EsValido(t *testing.T) {
	// Estados no catalogados no bloquean; el status canónico viene de la DB.
	state := subscription.Evaluate("LEGACY", nil, date(2026, 6, 1))
	assert.Equal(t, subscription.StateValid, state)
}

func TestWireStatus_TrialExpiredViajaComoExpired(t *testing.T) {
	assert.Equal(t, "EXPIRED", subscription.StateTrialExpired.WireStatus())
	assert.Equal(t, "SUSPENDED", subscription.StateSuspended.WireStatus())
	assert.Equal(t, "CANCELLED", subscription.StateCancelled.WireStatus())
}

// ──────────────────────────────────────────────────────────────────────────────
// IsFeatureAvailable / FeatureValue
// ──────────────────────────────────────────────────────────────────────────────

func planWith(features entity.FeatureSet) *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		ID:       "plan-1",
		Name:     entity.PlanGrowth,
		Features: features,
		IsActive: true,
	}
}

func TestIsFeatureAvailable_PresenteYVerdadera(t *testing.T) {
	plan := planWith(entity.FeatureSet{entity.FeatureAPIAccess: entity.BoolFeature(true)})
	assert.True(t, subscription.IsFeatureAvailable(subscription.StateValid, plan, entity.FeatureAPIAccess))
}

func TestIsFeatureAvailable_AusenteEsFalse(t *testing.T) {
	plan := planWith(entity.FeatureSet{})
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateValid, plan, entity.FeatureAPIAccess))
}

func TestIsFeatureAvailable_PresentePeroFalsa(t *testing.T) {
	plan := planWith(entity.FeatureSet{entity.FeatureAPIAccess: entity.BoolFeature(false)})
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateValid, plan, entity.FeatureAPIAccess))
}

func TestIsFeatureAvailable_EstadoInvalidoBloquea(t *testing.T) {
	plan := planWith(entity.FeatureSet{entity.FeatureAPIAccess: entity.BoolFeature(true)})
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateTrialExpired, plan, entity.FeatureAPIAccess))
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateSuspended, plan, entity.FeatureAPIAccess))
}

func TestIsFeatureAvailable_PlanInactivoBloquea(t *testing.T) {
	plan := planWith(entity.FeatureSet{entity.FeatureAPIAccess: entity.BoolFeature(true)})
	plan.IsActive = false
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateValid, plan, entity.FeatureAPIAccess))
}

func TestIsFeatureAvailable_FeatureNoBooleanaNuncaAutoriza(t *testing.T) {
	// trading_partners es int: presencia no implica verdad.
	plan := planWith(entity.FeatureSet{entity.FeatureTradingPartners: entity.IntFeature(50)})
	assert.False(t, subscription.IsFeatureAvailable(subscription.StateValid, plan, entity.FeatureTradingPartners))
}

func TestFeatureValue_LecturaTipada(t *testing.T) {
	plan := planWith(entity.FeatureSet{entity.FeatureTradingPartners: entity.IntFeature(50)})
	v, ok := subscription.FeatureValue(plan, entity.FeatureTradingPartners)
	assert.True(t, ok)
	assert.Equal(t, entity.KindInt, v.Kind)
	assert.Equal(t, 50, v.Int)

	_, ok = subscription.FeatureValue(plan, entity.FeatureReports)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysRemaining
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysRemaining(t *testing.T) {
	days, ok := subscription.DaysRemaining(datePtr(2026, 6, 15), date(2026, 6, 1))
	assert.True(t, ok)
	assert.Equal(t, 14, days)

	days, ok = subscription.DaysRemaining(datePtr(2026, 6, 1), date(2026, 6, 1))
	assert.True(t, ok)
	assert.Equal(t, 0, days)

	days, ok = subscription.DaysRemaining(datePtr(2026, 5, 30), date(2026, 6, 1))
	assert.True(t, ok)
	assert.Equal(t, -2, days)

	_, ok = subscription.DaysRemaining(nil, date(2026, 6, 1))
	assert.False(t, ok)
}
