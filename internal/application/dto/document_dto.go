package dto

import "time"

// TransactionResponse sobre de transacción EDI.
type TransactionResponse struct {
	ID                 string    `json:"id"`
	PartnerID          string    `json:"partner_id"`
	TransactionSetCode string    `json:"transaction_set_code"`
	ControlNumber      string    `json:"control_number"`
	Direction          string    `json:"direction"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreatePurchaseOrderRequest alta de orden de compra (850).
type CreatePurchaseOrderRequest struct {
	PONumber      string `json:"po_number"`
	PODate        string `json:"po_date"` // YYYY-MM-DD
	BuyerID       string `json:"buyer_id"`
	SellerID      string `json:"seller_id"`
	Direction     string `json:"direction"`
	ControlNumber string `json:"control_number"`
	CurrencyCode  string `json:"currency_code"`
	TotalAmount   string `json:"total_amount"` // decimal como string
	PaymentTerms  string `json:"payment_terms"`
}

// PurchaseOrderResponse representación pública de una orden de compra.
type PurchaseOrderResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	PONumber      string    `json:"po_number"`
	PODate        string    `json:"po_date"`
	BuyerID       string    `json:"buyer_id"`
	SellerID      string    `json:"seller_id"`
	CurrencyCode  string    `json:"currency_code"`
	TotalAmount   string    `json:"total_amount"`
	PaymentTerms  string    `json:"payment_terms,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateInvoiceRequest alta de factura (810).
type CreateInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"` // YYYY-MM-DD
	POID          string `json:"po_id"`
	SellerID      string `json:"seller_id"`
	BuyerID       string `json:"buyer_id"`
	Direction     string `json:"direction"`
	ControlNumber string `json:"control_number"`
	Subtotal      string `json:"subtotal"`
	TaxAmount     string `json:"tax_amount"`
	TotalAmount   string `json:"total_amount"`
	CurrencyCode  string `json:"currency_code"`
	DueDate       string `json:"due_date"` // opcional, YYYY-MM-DD
}

// InvoiceResponse representación pública de una factura.
type InvoiceResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   string    `json:"invoice_date"`
	POID          string    `json:"po_id,omitempty"`
	SellerID      string    `json:"seller_id"`
	BuyerID       string    `json:"buyer_id"`
	Subtotal      string    `json:"subtotal"`
	TaxAmount     string    `json:"tax_amount"`
	TotalAmount   string    `json:"total_amount"`
	CurrencyCode  string    `json:"currency_code"`
	DueDate       string    `json:"due_date,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePaymentRequest alta de pago (820).
type CreatePaymentRequest struct {
	PaymentNumber string `json:"payment_number"`
	PaymentDate   string `json:"payment_date"` // YYYY-MM-DD
	PayerID       string `json:"payer_id"`
	PayeeID       string `json:"payee_id"`
	Direction     string `json:"direction"`
	ControlNumber string `json:"control_number"`
	Amount        string `json:"amount"`
	Method        string `json:"method"` // ACH | CHECK | WIRE
	CurrencyCode  string `json:"currency_code"`
}

// PaymentResponse representación pública de un pago.
type PaymentResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	PaymentNumber string    `json:"payment_number"`
	PaymentDate   string    `json:"payment_date"`
	PayerID       string    `json:"payer_id"`
	PayeeID       string    `json:"payee_id"`
	Amount        string    `json:"amount"`
	Method        string    `json:"method"`
	CurrencyCode  string    `json:"currency_code"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
