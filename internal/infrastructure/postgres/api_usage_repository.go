package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

var _ repository.APIUsageRepository = (*APIUsageRepo)(nil)

// APIUsageRepo implementación de APIUsageRepository sobre PostgreSQL.
// Tabla append-only: el rate limiter solo inserta y cuenta sobre el índice
// (company_id, created_at).
type APIUsageRepo struct {
	q Querier
}

// NewAPIUsageRepository construye el adaptador del log de uso.
func NewAPIUsageRepository(q Querier) *APIUsageRepo {
	return &APIUsageRepo{q: q}
}

// Create inserta una fila de uso. El caller la trata como best-effort: un
// fallo aquí nunca debe afectar la respuesta del request.
func (r *APIUsageRepo) Create(ctx context.Context, log *entity.APIUsageLog) error {
	query := `
		INSERT INTO api_usage_logs
			(id, company_id, company_user_id, endpoint, method, status_code,
			 ip_address, user_agent, request_bytes, response_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.CompanyID, log.CompanyUserID, log.Endpoint, log.Method,
		log.StatusCode, nullIfEmpty(log.IPAddress), nullIfEmpty(log.UserAgent),
		log.RequestBytes, log.ResponseBytes, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usage log: %w", err)
	}
	return nil
}

// CountSince cuenta llamadas del tenant desde el instante dado (inclusive).
func (r *APIUsageRepo) CountSince(ctx context.Context, companyID string, since time.Time) (int, error) {
	query := `SELECT count(*) FROM api_usage_logs WHERE company_id = $1 AND created_at >= $2`
	var n int
	if err := r.q.QueryRow(ctx, query, companyID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return n, nil
}
