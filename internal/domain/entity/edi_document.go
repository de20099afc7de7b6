package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de intercambio.
const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

// Transaction set codes X12 soportados como registros (sin parser: los campos
// existen pero el contenido X12 no se interpreta en este repositorio).
const (
	TxSetPurchaseOrder = "850"
	TxSetInvoice       = "810"
	TxSetPayment       = "820"
)

// Estados genéricos de una transacción EDI.
const (
	TxStatusPending      = "PENDING"
	TxStatusProcessed    = "PROCESSED"
	TxStatusAcknowledged = "ACKNOWLEDGED"
	TxStatusError        = "ERROR"
)

// EDITransaction es el sobre de una transacción intercambiada con un partner.
// Es la entidad que cuenta contra max_transactions_monthly del plan: una fila
// por documento creado, con created_at como ancla de la ventana mensual.
type EDITransaction struct {
	ID                 string
	CompanyID          string
	PartnerID          string
	TransactionSetCode string // 850, 810, 820
	ControlNumber      string
	Direction          string // INBOUND | OUTBOUND
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PurchaseOrder cabecera de orden de compra (850). Registro CRUD plano,
// siempre ligado a su EDITransaction.
type PurchaseOrder struct {
	ID            string
	CompanyID     string
	TransactionID string
	PONumber      string
	PODate        time.Time
	BuyerID       string // TradingPartner
	SellerID      string // TradingPartner
	CurrencyCode  string
	TotalAmount   decimal.Decimal
	PaymentTerms  string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Invoice cabecera de factura (810).
type Invoice struct {
	ID            string
	CompanyID     string
	TransactionID string
	InvoiceNumber string
	InvoiceDate   time.Time
	POID          string // opcional: orden de compra relacionada
	SellerID      string
	BuyerID       string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	CurrencyCode  string
	DueDate       *time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Payment cabecera de pago/remesa (820).
type Payment struct {
	ID            string
	CompanyID     string
	TransactionID string
	PaymentNumber string
	PaymentDate   time.Time
	PayerID       string
	PayeeID       string
	Amount        decimal.Decimal
	Method        string // ACH | CHECK | WIRE
	CurrencyCode  string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
