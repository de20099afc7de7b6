package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
)

// SubscriptionHandler maneja catálogo de planes, upgrade y estado de la empresa.
type SubscriptionHandler struct {
	uc *usecase.SubscriptionService
}

// NewSubscriptionHandler construye el handler de suscripciones.
func NewSubscriptionHandler(uc *usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// ListPlans godoc
// @Summary      Planes de suscripción disponibles
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PlansResponse
// @Router       /api/auth/subscription/plans [get]
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.uc.ListPlans(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Upgrade godoc
// @Summary      Cambiar el plan de la empresa (solo ADMIN)
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpgradeRequest  true  "plan_id"
// @Success      200   {object}  dto.UpgradeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/subscription/upgrade [post]
func (h *SubscriptionHandler) Upgrade(c *fiber.Ctx) error {
	var in dto.UpgradeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PlanID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plan_id es requerido"})
	}
	out, err := h.uc.Upgrade(c.Context(), GetMembership(c), in.PlanID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CompanyStatus godoc
// @Summary      Estado de la empresa: suscripción, uso y features
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyStatusResponse
// @Router       /api/auth/company/status [get]
func (h *SubscriptionHandler) CompanyStatus(c *fiber.Ctx) error {
	out, err := h.uc.CompanyStatus(c.Context(), GetMembership(c), time.Now())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
