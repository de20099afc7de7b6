package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Unlimited marca un techo sin límite en MaxUsers, MaxTransactionsMonthly
// o en features numéricos como FeatureTradingPartners.
const Unlimited = -1

// Nombres de plan conocidos (tabla subscription_plans, columna name).
const (
	PlanTrial      = "trial"
	PlanBasic      = "basic"
	PlanGrowth     = "growth"
	PlanEnterprise = "enterprise"
)

// SubscriptionPlan es un tier de suscripción compartido (read-only) por muchas
// empresas. Los techos de uso viven como columnas; las capacidades como FeatureSet.
type SubscriptionPlan struct {
	ID                     string
	Name                   string // trial, basic, growth, enterprise
	DisplayName            string
	PriceNGN               decimal.Decimal
	MaxUsers               int // Unlimited = sin techo
	MaxTransactionsMonthly int // Unlimited = sin techo
	Features               FeatureSet
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Feature es el conjunto cerrado de capacidades que un plan puede declarar.
// Se evita el mapa string→any abierto: cada feature tiene un tipo de valor declarado.
type Feature string

const (
	FeatureBasicEDI           Feature = "basic_edi"
	FeatureAdvancedEDI        Feature = "advanced_edi"
	FeaturePremiumEDI         Feature = "premium_edi"
	FeatureAPIAccess          Feature = "api_access"
	FeatureSCBNIntegration    Feature = "scbn_integration"
	FeatureCustomReports      Feature = "custom_reports"
	FeatureSLAMonitoring      Feature = "sla_monitoring"
	FeaturePrioritySupport    Feature = "priority_support"
	FeatureBulkOperations     Feature = "bulk_operations"
	FeatureWhiteLabeling      Feature = "white_labeling"
	FeatureDedicatedSupport   Feature = "dedicated_support"
	FeatureCustomIntegrations Feature = "custom_integrations"
	FeatureTradingPartners    Feature = "trading_partners" // int: máximo de partners, Unlimited = sin tope
	FeatureReports            Feature = "reports"          // string: basic | advanced | premium
	FeatureSupport            Feature = "support"          // string: email | priority | 24/7
)

// FeatureKind tipo de valor declarado para cada feature.
type FeatureKind int

const (
	KindBool FeatureKind = iota
	KindInt
	KindString
)

// featureCatalog declara el tipo de valor de cada feature reconocido.
var featureCatalog = map[Feature]FeatureKind{
	FeatureBasicEDI:           KindBool,
	FeatureAdvancedEDI:        KindBool,
	FeaturePremiumEDI:         KindBool,
	FeatureAPIAccess:          KindBool,
	FeatureSCBNIntegration:    KindBool,
	FeatureCustomReports:      KindBool,
	FeatureSLAMonitoring:      KindBool,
	FeaturePrioritySupport:    KindBool,
	FeatureBulkOperations:     KindBool,
	FeatureWhiteLabeling:      KindBool,
	FeatureDedicatedSupport:   KindBool,
	FeatureCustomIntegrations: KindBool,
	FeatureTradingPartners:    KindInt,
	FeatureReports:            KindString,
	FeatureSupport:            KindString,
}

// FeatureValue valor tipado de una feature. Kind decide qué campo es significativo.
type FeatureValue struct {
	Kind FeatureKind
	Bool bool
	Int  int
	Str  string
}

// Constructores de valores de feature.
func BoolFeature(v bool) FeatureValue     { return FeatureValue{Kind: KindBool, Bool: v} }
func IntFeature(v int) FeatureValue       { return FeatureValue{Kind: KindInt, Int: v} }
func StringFeature(v string) FeatureValue { return FeatureValue{Kind: KindString, Str: v} }

// MarshalJSON serializa el valor plano (true, 25, "advanced") para la columna
// JSONB features.
func (v FeatureValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindString:
		return json.Marshal(v.Str)
	}
	return nil, fmt.Errorf("feature value: kind desconocido %d", v.Kind)
}

// UnmarshalJSON infiere el Kind desde el tipo JSON del valor.
func (v *FeatureValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = BoolFeature(t)
	case float64:
		*v = IntFeature(int(t))
	case string:
		*v = StringFeature(t)
	default:
		return fmt.Errorf("feature value: tipo JSON no soportado %T", raw)
	}
	return nil
}

// FeatureSet mapa cerrado feature→valor de un plan.
type FeatureSet map[Feature]FeatureValue

// Validate rechaza features desconocidos o con tipo de valor distinto al declarado.
// Se invoca al crear/editar planes, nunca en el camino caliente de cada request.
func (s FeatureSet) Validate() error {
	for f, v := range s {
		kind, ok := featureCatalog[f]
		if !ok {
			return fmt.Errorf("feature desconocido: %q", f)
		}
		if v.Kind != kind {
			return fmt.Errorf("feature %q: tipo de valor incorrecto", f)
		}
	}
	return nil
}

// KnownFeature informa si el nombre pertenece al catálogo cerrado.
func KnownFeature(f Feature) bool {
	_, ok := featureCatalog[f]
	return ok
}
