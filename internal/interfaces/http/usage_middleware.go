package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
)

// UsageLogger registra una fila de APIUsageLog después de ejecutar el handler.
// Best-effort: un fallo al insertar se loguea y se descarta; jamás altera la
// respuesta ya producida. Debe montarse DESPUÉS de TenantResolve: sin membresía
// resuelta no hay a qué empresa atribuir la llamada.
func UsageLogger(usageRepo repository.APIUsageRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		m := GetMembership(c)
		if m == nil {
			return err
		}
		entry := &entity.APIUsageLog{
			ID:            uuid.New().String(),
			CompanyID:     m.Company.ID,
			CompanyUserID: m.CompanyUser.ID,
			Endpoint:      c.Path(),
			Method:        c.Method(),
			StatusCode:    c.Response().StatusCode(),
			IPAddress:     c.IP(),
			UserAgent:     c.Get("User-Agent"),
			RequestBytes:  len(c.Body()),
			ResponseBytes: len(c.Response().Body()),
			CreatedAt:     time.Now(),
		}
		if logErr := usageRepo.Create(c.Context(), entry); logErr != nil {
			log.Warn().
				Err(logErr).
				Str("company_id", m.Company.ID).
				Str("endpoint", entry.Endpoint).
				Msg("no se pudo registrar el uso de API")
		}
		return err
	}
}
