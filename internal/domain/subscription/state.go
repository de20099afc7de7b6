// Package subscription evalúa el estado de la suscripción de una empresa en un
// instante dado. Todo aquí es puro (sin reloj propio, sin I/O): la función se
// ejecuta en cada request protegido y se testea con relojes fijos.
package subscription

import (
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// State es el estado derivado de la suscripción.
type State string

const (
	StateValid        State = "VALID"
	StateTrialExpired State = "TRIAL_EXPIRED"
	StateSuspended    State = "SUSPENDED"
	StateCancelled    State = "CANCELLED"
)

// WireStatus devuelve el valor de subscription_status que viaja en las
// respuestas 402 (TRIAL_EXPIRED se publica como EXPIRED).
func (s State) WireStatus() string {
	if s == StateTrialExpired {
		return "EXPIRED"
	}
	return string(s)
}

// Evaluate deriva el estado a partir de (status, end_date, now). Precedencia,
// primera coincidencia gana:
//  1. SUSPENDED
//  2. CANCELLED
//  3. TRIAL con end_date fijada y vencida (end_date < hoy, comparación por día)
//  4. VALID
//
// Un TRIAL con end_date == hoy sigue siendo VALID: la expiración es estricta.
// Una empresa ACTIVE con end_date nil no vence nunca.
func Evaluate(status string, endDate *time.Time, now time.Time) State {
	switch status {
	case entity.SubscriptionSuspended:
		return StateSuspended
	case entity.SubscriptionCancelled:
		return StateCancelled
	}
	if status == entity.SubscriptionTrial && endDate != nil && beforeDay(*endDate, now) {
		return StateTrialExpired
	}
	return StateValid
}

// IsFeatureAvailable informa si una feature booleana está disponible: requiere
// estado VALID, plan activo y la bandera presente y verdadera en el FeatureSet.
// Para features no booleanas (int/string) la presencia no implica verdad;
// usar FeatureValue y que el llamador interprete el valor.
func IsFeatureAvailable(state State, plan *entity.SubscriptionPlan, f entity.Feature) bool {
	if state != StateValid || plan == nil || !plan.IsActive {
		return false
	}
	v, ok := plan.Features[f]
	if !ok || v.Kind != entity.KindBool {
		return false
	}
	return v.Bool
}

// FeatureValue devuelve el valor tipado de una feature del plan, si existe.
// No impone estado VALID: es una lectura del catálogo, no una autorización.
func FeatureValue(plan *entity.SubscriptionPlan, f entity.Feature) (entity.FeatureValue, bool) {
	if plan == nil {
		return entity.FeatureValue{}, false
	}
	v, ok := plan.Features[f]
	return v, ok
}

// DaysRemaining días enteros hasta end_date (por día de calendario).
// Devuelve 0 y false si end_date es nil.
func DaysRemaining(endDate *time.Time, now time.Time) (int, bool) {
	if endDate == nil {
		return 0, false
	}
	end := dayOf(*endDate)
	today := dayOf(now)
	return int(end.Sub(today).Hours() / 24), true
}

// beforeDay compara fechas a granularidad de día: a < b por calendario.
func beforeDay(a, b time.Time) bool {
	return dayOf(a).Before(dayOf(b))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
