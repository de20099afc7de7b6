package dto

import "time"

// PlanResponse representación pública de un plan de suscripción.
type PlanResponse struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	DisplayName            string         `json:"display_name"`
	PriceNGN               string         `json:"price_ngn"` // decimal serializado como string
	MaxUsers               int            `json:"max_users"`
	MaxTransactionsMonthly int            `json:"max_transactions_monthly"`
	Features               map[string]any `json:"features"`
}

// PlansResponse listado de planes contratables.
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// UpgradeRequest cambio de plan.
type UpgradeRequest struct {
	PlanID string `json:"plan_id"`
}

// UpgradeResponse resultado del cambio de plan.
type UpgradeResponse struct {
	Message            string `json:"message"`
	SubscriptionPlan   string `json:"subscription_plan"`
	SubscriptionStatus string `json:"subscription_status"`
}

// CompanyStatusResponse estado de suscripción y uso actual del tenant.
type CompanyStatusResponse struct {
	Company  CompanyStatusInfo  `json:"company"`
	Limits   CompanyUsageLimits `json:"limits"`
	Features map[string]any     `json:"features"`
}

// CompanyStatusInfo identidad y standing de la empresa.
type CompanyStatusInfo struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	SubscriptionPlan    string     `json:"subscription_plan"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	DaysRemaining       *int       `json:"days_remaining,omitempty"`
}

// CompanyUsageLimits uso corriente contra los techos del plan.
type CompanyUsageLimits struct {
	MaxUsers               int `json:"max_users"`
	CurrentUsers           int `json:"current_users"`
	MaxTransactionsMonthly int `json:"max_transactions_monthly"`
	CurrentTransactions    int `json:"current_transactions"`
	UsersAvailable         int `json:"users_available"`
	TransactionsAvailable  int `json:"transactions_available"`
}
