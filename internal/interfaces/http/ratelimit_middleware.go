package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
)

// rateLimiter contrato mínimo del middleware; lo implementa *usecase.RateLimitService.
type rateLimiter interface {
	Check(ctx context.Context, companyID, planName string, now time.Time) (*usecase.RateLimitResult, error)
}

// RateLimitMiddleware acota las llamadas del tenant al techo horario de su
// plan. Debe usarse DESPUÉS de TenantResolve (necesita la membresía en Locals).
//
//   - 429 Too Many Requests con limit, remaining=0 y reset_time si el bucket
//     está agotado.
//   - En admisión, responde con los headers X-RateLimit-Limit, -Remaining y
//     -Reset (epoch segs del próximo bucket).
//   - Si la DB falla al contar, el request pasa: un rate limiter caído no debe
//     tumbar la API.
func RateLimitMiddleware(limiter rateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes del rate limit",
			})
		}

		res, err := limiter.Check(c.Context(), m.Company.ID, m.Plan.Name, time.Now())
		if err != nil {
			var rle *domain.RateLimitError
			if errors.As(err, &rle) {
				zero := 0
				c.Set("X-RateLimit-Limit", strconv.Itoa(rle.Limit))
				c.Set("X-RateLimit-Remaining", "0")
				c.Set("X-RateLimit-Reset", strconv.FormatInt(rle.ResetAt.Unix(), 10))
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.GateErrorResponse{
					Error:     "Rate limit exceeded",
					Detail:    "se alcanzó el máximo de llamadas por hora del plan",
					Limit:     rle.Limit,
					Remaining: &zero,
					ResetTime: rle.ResetAt.UTC().Format(time.RFC3339),
				})
			}
			// Fallo de infraestructura: admitir sin headers.
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		return c.Next()
	}
}
