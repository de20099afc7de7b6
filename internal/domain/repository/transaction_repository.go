package repository

import (
	"context"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// EDITransactionRepository puerto para sobres de transacción EDI.
type EDITransactionRepository interface {
	Create(ctx context.Context, tx *entity.EDITransaction) error
	GetByID(ctx context.Context, companyID, id string) (*entity.EDITransaction, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.EDITransaction, error)
	// CountSince cuenta transacciones del tenant con created_at >= since
	// (el numerador del techo mensual; since es el primer día del mes en curso).
	CountSince(ctx context.Context, companyID string, since time.Time) (int, error)
}

// PurchaseOrderRepository puerto para órdenes de compra (850).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}

// InvoiceRepository puerto para facturas (810).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
}

// PaymentRepository puerto para pagos (820).
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Payment, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Payment, error)
}
