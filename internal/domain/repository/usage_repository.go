package repository

import (
	"context"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// APIUsageRepository puerto para el log de uso de API. Append-only: solo
// inserciones y conteos agregados.
type APIUsageRepository interface {
	Create(ctx context.Context, log *entity.APIUsageLog) error
	// CountSince cuenta llamadas del tenant con created_at >= since
	// (el numerador del rate limit por hora).
	CountSince(ctx context.Context, companyID string, since time.Time) (int, error)
}
