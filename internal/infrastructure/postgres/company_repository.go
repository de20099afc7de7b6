package postgres

import (
	"context"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL
// (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, tax_id, address, phone, email,
	subscription_plan_id, subscription_status, subscription_start, subscription_end,
	is_active, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Address),
		nullIfEmpty(c.Phone), nullIfEmpty(c.Email),
		c.SubscriptionPlanID, c.SubscriptionStatus, c.SubscriptionStart, c.SubscriptionEnd,
		c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert company: %w", errDuplicate(err))
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update actualiza los datos generales de una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		   SET name = $2, tax_id = $3, address = $4, phone = $5, email = $6,
		       is_active = $7, updated_at = $8
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.TaxID), nullIfEmpty(c.Address),
		nullIfEmpty(c.Phone), nullIfEmpty(c.Email), c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// UpdateSubscription cambia plan/estado/fechas de suscripción en una sola escritura.
func (r *CompanyRepo) UpdateSubscription(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		   SET subscription_plan_id = $2, subscription_status = $3,
		       subscription_start = $4, subscription_end = $5, updated_at = $6
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.SubscriptionPlanID, c.SubscriptionStatus,
		c.SubscriptionStart, c.SubscriptionEnd, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListTrialsEndingOn devuelve empresas TRIAL activas cuyo subscription_end cae
// en la fecha dada (YYYY-MM-DD).
func (r *CompanyRepo) ListTrialsEndingOn(ctx context.Context, date string) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		  FROM companies
		 WHERE subscription_status = 'TRIAL'
		   AND is_active = true
		   AND subscription_end::date = $1::date
		 ORDER BY name`
	rows, err := r.q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list trials ending: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// scanCompany materializa una fila de companies. Las columnas NULLables se
// escanean vía punteros a string temporal.
func scanCompany(row interface{ Scan(dest ...any) error }) (*entity.Company, error) {
	var c entity.Company
	var taxID, address, phone, email *string
	err := row.Scan(
		&c.ID, &c.Name, &taxID, &address, &phone, &email,
		&c.SubscriptionPlanID, &c.SubscriptionStatus, &c.SubscriptionStart, &c.SubscriptionEnd,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.TaxID = deref(taxID)
	c.Address = deref(address)
	c.Phone = deref(phone)
	c.Email = deref(email)
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
