package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.CompanyUserRepository = (*CompanyUserRepo)(nil)

// CompanyUserRepo implementación de CompanyUserRepository sobre PostgreSQL
// (usable con pool o tx).
type CompanyUserRepo struct {
	q Querier
}

// NewCompanyUserRepository construye el adaptador de membresías.
func NewCompanyUserRepository(q Querier) *CompanyUserRepo {
	return &CompanyUserRepo{q: q}
}

const companyUserColumns = `id, company_id, user_id, role, permissions, is_active, created_at, updated_at`

// Create persiste una membresía. El constraint único parcial sobre user_id
// (WHERE is_active) hace imposible una segunda membresía activa.
func (r *CompanyUserRepo) Create(ctx context.Context, cu *entity.CompanyUser) error {
	perms, err := json.Marshal(cu.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	query := `
		INSERT INTO company_users (` + companyUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		cu.ID, cu.CompanyID, cu.UserID, cu.Role, perms,
		cu.IsActive, cu.CreatedAt, cu.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert company_user: %w", errDuplicate(err))
		}
		return fmt.Errorf("insert company_user: %w", err)
	}
	return nil
}

// GetByID obtiene una membresía por ID.
func (r *CompanyUserRepo) GetByID(ctx context.Context, id string) (*entity.CompanyUser, error) {
	query := `SELECT ` + companyUserColumns + ` FROM company_users WHERE id = $1`
	cu, err := scanCompanyUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company_user: %w", err)
	}
	return cu, nil
}

// FindActiveByUser resuelve la membresía activa única del usuario junto con su
// empresa y plan en una sola consulta. Se piden hasta 2 filas a propósito:
// cero → ErrNoMembership; dos → ErrAmbiguousMembership. Nunca se elige una
// fila al azar ante datos ambiguos.
func (r *CompanyUserRepo) FindActiveByUser(ctx context.Context, userID string) (*entity.Membership, error) {
	query := `
		SELECT cu.id, cu.company_id, cu.user_id, cu.role, cu.permissions,
		       cu.is_active, cu.created_at, cu.updated_at,
		       c.id, c.name, c.tax_id, c.address, c.phone, c.email,
		       c.subscription_plan_id, c.subscription_status,
		       c.subscription_start, c.subscription_end,
		       c.is_active, c.created_at, c.updated_at,
		       p.id, p.name, p.display_name, p.price_ngn,
		       p.max_users, p.max_transactions_monthly, p.features,
		       p.is_active, p.created_at, p.updated_at
		  FROM company_users cu
		  JOIN companies c ON c.id = cu.company_id
		  JOIN subscription_plans p ON p.id = c.subscription_plan_id
		 WHERE cu.user_id = $1 AND cu.is_active = true
		 LIMIT 2`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	defer rows.Close()

	var memberships []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		var perms, features []byte
		var taxID, address, phone, email *string
		err := rows.Scan(
			&m.CompanyUser.ID, &m.CompanyUser.CompanyID, &m.CompanyUser.UserID,
			&m.CompanyUser.Role, &perms,
			&m.CompanyUser.IsActive, &m.CompanyUser.CreatedAt, &m.CompanyUser.UpdatedAt,
			&m.Company.ID, &m.Company.Name, &taxID, &address, &phone, &email,
			&m.Company.SubscriptionPlanID, &m.Company.SubscriptionStatus,
			&m.Company.SubscriptionStart, &m.Company.SubscriptionEnd,
			&m.Company.IsActive, &m.Company.CreatedAt, &m.Company.UpdatedAt,
			&m.Plan.ID, &m.Plan.Name, &m.Plan.DisplayName, &m.Plan.PriceNGN,
			&m.Plan.MaxUsers, &m.Plan.MaxTransactionsMonthly, &features,
			&m.Plan.IsActive, &m.Plan.CreatedAt, &m.Plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		if len(perms) > 0 {
			if err := json.Unmarshal(perms, &m.CompanyUser.Permissions); err != nil {
				return nil, fmt.Errorf("unmarshal permissions: %w", err)
			}
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &m.Plan.Features); err != nil {
				return nil, fmt.Errorf("unmarshal features: %w", err)
			}
		}
		m.Company.TaxID = deref(taxID)
		m.Company.Address = deref(address)
		m.Company.Phone = deref(phone)
		m.Company.Email = deref(email)
		memberships = append(memberships, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	switch len(memberships) {
	case 0:
		return nil, domain.ErrNoMembership
	case 1:
		return memberships[0], nil
	default:
		return nil, domain.ErrAmbiguousMembership
	}
}

// CountActiveByCompany cuenta membresías activas del tenant.
func (r *CompanyUserRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	query := `SELECT count(*) FROM company_users WHERE company_id = $1 AND is_active = true`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count company_users: %w", err)
	}
	return n, nil
}

// ListByCompany devuelve membresías del tenant con paginación.
func (r *CompanyUserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.CompanyUser, error) {
	query := `
		SELECT ` + companyUserColumns + `
		  FROM company_users
		 WHERE company_id = $1
		 ORDER BY created_at
		 LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list company_users: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyUser
	for rows.Next() {
		cu, err := scanCompanyUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company_user: %w", err)
		}
		list = append(list, cu)
	}
	return list, rows.Err()
}

// Deactivate baja lógica de la membresía (is_active = false), nunca DELETE.
func (r *CompanyUserRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE company_users SET is_active = false, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate company_user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza rol y permisos de una membresía.
func (r *CompanyUserRepo) Update(ctx context.Context, cu *entity.CompanyUser) error {
	perms, err := json.Marshal(cu.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	query := `
		UPDATE company_users
		   SET role = $2, permissions = $3, is_active = $4, updated_at = $5
		 WHERE id = $1`
	_, err = r.q.Exec(ctx, query, cu.ID, cu.Role, perms, cu.IsActive, cu.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update company_user: %w", err)
	}
	return nil
}

func scanCompanyUser(row interface{ Scan(dest ...any) error }) (*entity.CompanyUser, error) {
	var cu entity.CompanyUser
	var perms []byte
	err := row.Scan(
		&cu.ID, &cu.CompanyID, &cu.UserID, &cu.Role, &perms,
		&cu.IsActive, &cu.CreatedAt, &cu.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &cu.Permissions); err != nil {
			return nil, fmt.Errorf("unmarshal permissions: %w", err)
		}
	}
	return &cu, nil
}
