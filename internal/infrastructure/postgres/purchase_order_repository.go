package postgres

import (
	"context"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, company_id, transaction_id, po_number, po_date, buyer_id, seller_id,
	currency_code, total_amount, payment_terms, status, created_at, updated_at`

// Create persiste la cabecera de la orden de compra.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.CompanyID, po.TransactionID, po.PONumber, po.PODate,
		po.BuyerID, po.SellerID, po.CurrencyCode, po.TotalAmount,
		nullIfEmpty(po.PaymentTerms), po.Status, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert purchase order: %w", errDuplicate(err))
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de compra del tenant.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE company_id = $1 AND id = $2`
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// ListByCompany pagina las órdenes de compra del tenant.
func (r *PurchaseOrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + poColumns + `
		  FROM purchase_orders
		 WHERE company_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

func scanPurchaseOrder(row interface{ Scan(dest ...any) error }) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var terms *string
	err := row.Scan(
		&po.ID, &po.CompanyID, &po.TransactionID, &po.PONumber, &po.PODate,
		&po.BuyerID, &po.SellerID, &po.CurrencyCode, &po.TotalAmount,
		&terms, &po.Status, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.PaymentTerms = deref(terms)
	return &po, nil
}
