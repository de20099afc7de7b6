package dto

import "time"

// CreatePartnerRequest alta de socio comercial.
type CreatePartnerRequest struct {
	PartnerCode string `json:"partner_code"`
	CompanyName string `json:"company_name"`
	EDIID       string `json:"edi_id"`
	Qualifier   string `json:"qualifier"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

// UpdatePartnerRequest edición de socio comercial (campos de contacto).
type UpdatePartnerRequest struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

// PartnerResponse representación pública de un socio comercial.
type PartnerResponse struct {
	ID          string    `json:"id"`
	PartnerCode string    `json:"partner_code"`
	CompanyName string    `json:"company_name"`
	EDIID       string    `json:"edi_id"`
	Qualifier   string    `json:"qualifier"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
