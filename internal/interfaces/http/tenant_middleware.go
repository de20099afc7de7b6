package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/subscription"
)

// tenantResolver es el contrato mínimo que necesita el gate para resolver la
// membresía. Lo implementa *usecase.TenantService; la interfaz evita acoplar
// el middleware al paquete de aplicación completo.
type tenantResolver interface {
	Resolve(ctx context.Context, userID string) (*entity.Membership, error)
}

// TenantResolve resuelve la membresía activa del usuario y la deja en
// c.Locals. Debe usarse DESPUÉS de AuthMiddleware. No evalúa el estado de la
// suscripción: las rutas de facturación necesitan membresía pero deben seguir
// accesibles con la suscripción vencida (si no, nadie podría hacer upgrade).
//
// Comportamiento:
//   - 403 Forbidden → usuario sin empresa asociada, o empresa desactivada.
//   - 500 Internal  → más de una membresía activa (anomalía de datos: nunca se
//     elige una al azar) o fallo de DB.
//   - En éxito, la membresía queda en c.Locals y ninguna etapa posterior ni el
//     handler vuelven a resolverla.
func TenantResolve(resolver tenantResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "user_id no encontrado en el token",
			})
		}

		m, err := resolver.Resolve(c.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoMembership):
				return c.Status(fiber.StatusForbidden).JSON(dto.GateErrorResponse{
					Error:  "No company association",
					Detail: "el usuario no pertenece a ninguna empresa activa",
				})
			case errors.Is(err, domain.ErrAmbiguousMembership):
				return c.Status(fiber.StatusInternalServerError).JSON(dto.GateErrorResponse{
					Error:  "Membership conflict",
					Detail: "más de una membresía activa para el usuario; contacte a soporte",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(dto.GateErrorResponse{
					Error:  "Internal error",
					Detail: "no se pudo resolver la empresa del usuario",
				})
			}
		}

		if !m.Company.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.GateErrorResponse{
				Error:  "Company disabled",
				Detail: "la empresa está desactivada",
			})
		}

		c.Locals(LocalMembership, m)
		return c.Next()
	}
}

// SubscriptionGate verifica el estado de la suscripción de la membresía ya
// resuelta. Debe usarse DESPUÉS de TenantResolve.
//
//   - 402 Payment Required → suscripción EXPIRED / SUSPENDED / CANCELLED.
func SubscriptionGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes del gate de suscripción",
			})
		}

		state := subscription.Evaluate(m.Company.SubscriptionStatus, m.Company.SubscriptionEnd, time.Now())
		if state != subscription.StateValid {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.GateErrorResponse{
				Error:              "Subscription inactive",
				Detail:             subscriptionDetail(state),
				SubscriptionStatus: state.WireStatus(),
			})
		}
		return c.Next()
	}
}

// GetMembership devuelve la membresía cacheada por TenantResolve.
func GetMembership(c *fiber.Ctx) *entity.Membership {
	v := c.Locals(LocalMembership)
	if v == nil {
		return nil
	}
	m, _ := v.(*entity.Membership)
	return m
}

func subscriptionDetail(state subscription.State) string {
	switch state {
	case subscription.StateTrialExpired:
		return "el período de prueba terminó; elija un plan para continuar"
	case subscription.StateSuspended:
		return "la suscripción está suspendida por falta de pago"
	case subscription.StateCancelled:
		return "la suscripción fue cancelada"
	}
	return "la suscripción no está activa"
}
