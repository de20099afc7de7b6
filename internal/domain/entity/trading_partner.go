package entity

import "time"

// TradingPartner es un socio comercial del tenant (comprador, vendedor, 3PL).
// EDIID + Qualifier identifican al partner en los sobres de intercambio.
type TradingPartner struct {
	ID          string
	CompanyID   string
	PartnerCode string
	CompanyName string
	EDIID       string
	Qualifier   string // 01=DUNS, 12=teléfono, ZZ=mutuamente acordado
	ContactName string
	Email       string
	Phone       string
	City        string
	State       string
	Country     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
