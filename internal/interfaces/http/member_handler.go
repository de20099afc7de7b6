package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
)

// MemberHandler maneja los usuarios de la empresa del solicitante.
type MemberHandler struct {
	uc *usecase.MemberService
}

// NewMemberHandler construye el handler de miembros.
func NewMemberHandler(uc *usecase.MemberService) *MemberHandler {
	return &MemberHandler{uc: uc}
}

// List godoc
// @Summary      Miembros de la empresa
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo de filas"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MemberResponse
// @Router       /api/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Context(), GetMembership(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Invitar un usuario a la empresa
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InviteMemberRequest  true  "usuario y rol"
// @Success      201   {object}  dto.MemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.GateErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/members [post]
func (h *MemberHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y role son requeridos"})
	}
	out, err := h.uc.Invite(c.Context(), GetMembership(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar un miembro de la empresa
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la membresía"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [delete]
func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetMembership(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
