package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.EDITransactionRepository = (*EDITransactionRepo)(nil)

// EDITransactionRepo implementación de EDITransactionRepository sobre PostgreSQL
// (usable con pool o tx). Las filas de edi_transactions son el numerador del
// techo mensual de transacciones.
type EDITransactionRepo struct {
	q Querier
}

// NewEDITransactionRepository construye el adaptador de sobres EDI.
func NewEDITransactionRepository(q Querier) *EDITransactionRepo {
	return &EDITransactionRepo{q: q}
}

const ediTxColumns = `id, company_id, partner_id, transaction_set_code, control_number, direction, status, created_at, updated_at`

// Create persiste un sobre de transacción.
func (r *EDITransactionRepo) Create(ctx context.Context, tx *entity.EDITransaction) error {
	query := `
		INSERT INTO edi_transactions (` + ediTxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.CompanyID, tx.PartnerID, tx.TransactionSetCode,
		nullIfEmpty(tx.ControlNumber), tx.Direction, tx.Status,
		tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert edi transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un sobre del tenant.
func (r *EDITransactionRepo) GetByID(ctx context.Context, companyID, id string) (*entity.EDITransaction, error) {
	query := `SELECT ` + ediTxColumns + ` FROM edi_transactions WHERE company_id = $1 AND id = $2`
	tx, err := scanEDITransaction(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get edi transaction: %w", err)
	}
	return tx, nil
}

// ListByCompany pagina los sobres del tenant, más recientes primero.
func (r *EDITransactionRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.EDITransaction, error) {
	query := `
		SELECT ` + ediTxColumns + `
		  FROM edi_transactions
		 WHERE company_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list edi transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.EDITransaction
	for rows.Next() {
		tx, err := scanEDITransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan edi transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// CountSince cuenta sobres del tenant con created_at >= since.
func (r *EDITransactionRepo) CountSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	query := `SELECT count(*) FROM edi_transactions WHERE company_id = $1 AND created_at >= $2`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count edi transactions: %w", err)
	}
	return n, nil
}

func scanEDITransaction(row interface{ Scan(dest ...any) error }) (*entity.EDITransaction, error) {
	var tx entity.EDITransaction
	var controlNumber *string
	err := row.Scan(
		&tx.ID, &tx.CompanyID, &tx.PartnerID, &tx.TransactionSetCode,
		&controlNumber, &tx.Direction, &tx.Status, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.ControlNumber = deref(controlNumber)
	return &tx, nil
}
