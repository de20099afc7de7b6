package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// quotaChecker contrato mínimo para los middlewares de cuota; lo implementa
// *usecase.LimitService.
type quotaChecker interface {
	CheckTransactionQuota(ctx context.Context, m *entity.Membership, now time.Time) error
	CheckUserQuota(ctx context.Context, m *entity.Membership) error
}

// RequireTransactionQuota rechaza con 403 cuando el tenant agotó el techo
// mensual de transacciones de su plan. Solo se monta en rutas que crean
// transacciones; las lecturas no consumen cuota.
func RequireTransactionQuota(checker quotaChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes de la cuota",
			})
		}
		if err := checker.CheckTransactionQuota(c.Context(), m, time.Now()); err != nil {
			return respondQuotaError(c, err)
		}
		return c.Next()
	}
}

// RequireUserQuota rechaza con 403 cuando el tenant alcanzó el máximo de
// usuarios activos del plan. Se monta en la ruta de invitación de miembros.
func RequireUserQuota(checker quotaChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes de la cuota",
			})
		}
		if err := checker.CheckUserQuota(c.Context(), m); err != nil {
			return respondQuotaError(c, err)
		}
		return c.Next()
	}
}

// RequireRole exige que la membresía resuelta tenga uno de los roles dados.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes del control de rol",
			})
		}
		for _, role := range roles {
			if m.CompanyUser.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.GateErrorResponse{
			Error:  "Insufficient role",
			Detail: "la operación requiere rol " + rolesList(roles),
		})
	}
}

// RequirePermission exige una bandera de permiso en la membresía resuelta.
// ADMIN pasa siempre.
func RequirePermission(p entity.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := GetMembership(c)
		if m == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "membresía no resuelta antes del control de permisos",
			})
		}
		if m.CompanyUser.Role == entity.RoleAdmin || m.CompanyUser.Permissions.Has(p) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.GateErrorResponse{
			Error:  "Permission denied",
			Detail: "la operación requiere el permiso " + string(p),
		})
	}
}

func respondQuotaError(c *fiber.Ctx, err error) error {
	var qe *domain.QuotaError
	if errors.As(err, &qe) {
		return c.Status(fiber.StatusForbidden).JSON(dto.GateErrorResponse{
			Error:  "Plan limit reached",
			Detail: fmt.Sprintf("se alcanzó el límite de %s del plan (%d); actualice su plan para continuar", qe.Resource, qe.Ceiling),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "no se pudo verificar la cuota del plan",
	})
}

func rolesList(roles []string) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " o "
		}
		out += r
	}
	return out
}
