package postgres

import (
	"context"
	"fmt"

	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.TradingPartnerRepository = (*TradingPartnerRepo)(nil)

// TradingPartnerRepo implementación de TradingPartnerRepository sobre PostgreSQL.
// Todas las consultas filtran por company_id: un partner nunca es visible fuera
// de su tenant.
type TradingPartnerRepo struct {
	q Querier
}

// NewTradingPartnerRepository construye el adaptador de socios comerciales.
func NewTradingPartnerRepository(q Querier) *TradingPartnerRepo {
	return &TradingPartnerRepo{q: q}
}

const partnerColumns = `id, company_id, partner_code, company_name, edi_id, qualifier,
	contact_name, email, phone, city, state, country, is_active, created_at, updated_at`

// Create persiste un partner. partner_code es único por tenant.
func (r *TradingPartnerRepo) Create(ctx context.Context, p *entity.TradingPartner) error {
	query := `
		INSERT INTO trading_partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.PartnerCode, p.CompanyName, p.EDIID, p.Qualifier,
		nullIfEmpty(p.ContactName), nullIfEmpty(p.Email), nullIfEmpty(p.Phone),
		nullIfEmpty(p.City), nullIfEmpty(p.State), p.Country,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert partner: %w", errDuplicate(err))
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un partner del tenant.
func (r *TradingPartnerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.TradingPartner, error) {
	query := `SELECT ` + partnerColumns + ` FROM trading_partners WHERE company_id = $1 AND id = $2`
	p, err := scanPartner(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// Update actualiza un partner existente del tenant.
func (r *TradingPartnerRepo) Update(ctx context.Context, p *entity.TradingPartner) error {
	query := `
		UPDATE trading_partners
		   SET partner_code = $3, company_name = $4, edi_id = $5, qualifier = $6,
		       contact_name = $7, email = $8, phone = $9, city = $10, state = $11,
		       country = $12, is_active = $13, updated_at = $14
		 WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, p.PartnerCode, p.CompanyName, p.EDIID, p.Qualifier,
		nullIfEmpty(p.ContactName), nullIfEmpty(p.Email), nullIfEmpty(p.Phone),
		nullIfEmpty(p.City), nullIfEmpty(p.State), p.Country,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany pagina los partners del tenant.
func (r *TradingPartnerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.TradingPartner, error) {
	query := `
		SELECT ` + partnerColumns + `
		  FROM trading_partners
		 WHERE company_id = $1
		 ORDER BY company_name
		 LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var list []*entity.TradingPartner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountActiveByCompany cuenta partners activos del tenant (numerador del
// feature trading_partners).
func (r *TradingPartnerRepo) CountActiveByCompany(ctx context.Context, companyID string) (int, error) {
	query := `SELECT count(*) FROM trading_partners WHERE company_id = $1 AND is_active = true`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return n, nil
}

// Deactivate baja lógica del partner.
func (r *TradingPartnerRepo) Deactivate(ctx context.Context, companyID, id string) error {
	query := `UPDATE trading_partners SET is_active = false, updated_at = now() WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query, companyID, id)
	if err != nil {
		return fmt.Errorf("deactivate partner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPartner(row interface{ Scan(dest ...any) error }) (*entity.TradingPartner, error) {
	var p entity.TradingPartner
	var contact, email, phone, city, state *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.PartnerCode, &p.CompanyName, &p.EDIID, &p.Qualifier,
		&contact, &email, &phone, &city, &state, &p.Country,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ContactName = deref(contact)
	p.Email = deref(email)
	p.Phone = deref(phone)
	p.City = deref(city)
	p.State = deref(state)
	return &p, nil
}
