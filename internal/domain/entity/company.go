package entity

import "time"

// Estados de suscripción de una empresa (columna subscription_status).
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionTrial     = "TRIAL"
	SubscriptionSuspended = "SUSPENDED"
	SubscriptionCancelled = "CANCELLED"
)

// Company representa una organización/tenant del sistema. Es la unidad de
// aislamiento de datos y de suscripción: todos los documentos EDI, usuarios y
// registros de uso cuelgan de una Company.
type Company struct {
	ID                 string
	Name               string
	TaxID              string // identificación fiscal del tenant
	Address            string
	Phone              string
	Email              string
	SubscriptionPlanID string
	SubscriptionStatus string     // ver constantes Subscription*
	SubscriptionStart  *time.Time // fecha de inicio del plan vigente
	SubscriptionEnd    *time.Time // solo significativo en TRIAL; nil = sin vencimiento
	IsActive           bool       // baja lógica; las empresas nunca se borran físicamente
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
