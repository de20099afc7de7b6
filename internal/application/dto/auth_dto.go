package dto

import "time"

// RegisterCompanyRequest datos de la empresa en el registro.
type RegisterCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// RegisterUserRequest datos del usuario administrador en el registro.
type RegisterUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterRequest registro conjunto: usuario + empresa + membresía ADMIN,
// todo en una transacción.
type RegisterRequest struct {
	Company RegisterCompanyRequest `json:"company"`
	User    RegisterUserRequest    `json:"user"`
}

// RegisterResponse resultado del registro.
type RegisterResponse struct {
	Message string          `json:"message"`
	User    UserResponse    `json:"user"`
	Company CompanySummary  `json:"company"`
	Token   string          `json:"token"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanySummary resumen de empresa en respuestas de auth.
type CompanySummary struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEnds          *time.Time `json:"trial_ends,omitempty"`
}

// ProfileResponse perfil del usuario con su membresía.
type ProfileResponse struct {
	User        UserResponse    `json:"user"`
	CompanyID   string          `json:"company_id,omitempty"`
	CompanyName string          `json:"company_name,omitempty"`
	Role        string          `json:"role,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// UpdateProfileRequest campos editables del perfil.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
