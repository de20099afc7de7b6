package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
)

// DocumentHandler maneja los documentos EDI: órdenes de compra (850),
// facturas (810) y pagos (820). Cada alta crea también el sobre
// EDITransaction, en la misma transacción de DB.
type DocumentHandler struct {
	uc *usecase.DocumentService
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(uc *usecase.DocumentService) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// CreatePurchaseOrder godoc
// @Summary      Crear orden de compra (850)
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "orden de compra"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.GateErrorResponse
// @Router       /api/purchase-orders [post]
func (h *DocumentHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePurchaseOrder(c.Context(), GetMembership(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPurchaseOrder godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *DocumentHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseOrder(c.Context(), GetMembership(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListPurchaseOrders godoc
// @Summary      Órdenes de compra del tenant
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *DocumentHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListPurchaseOrders(c.Context(), GetMembership(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateInvoice godoc
// @Summary      Crear factura (810)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.GateErrorResponse
// @Router       /api/invoices [post]
func (h *DocumentHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateInvoice(c.Context(), GetMembership(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetInvoice godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *DocumentHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), GetMembership(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListInvoices godoc
// @Summary      Facturas del tenant
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *DocumentHandler) ListInvoices(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListInvoices(c.Context(), GetMembership(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreatePayment godoc
// @Summary      Crear pago (820)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePaymentRequest  true  "pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.GateErrorResponse
// @Router       /api/payments [post]
func (h *DocumentHandler) CreatePayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePayment(c.Context(), GetMembership(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPayment godoc
// @Summary      Obtener pago
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *DocumentHandler) GetPayment(c *fiber.Ctx) error {
	out, err := h.uc.GetPayment(c.Context(), GetMembership(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListPayments godoc
// @Summary      Pagos del tenant
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *DocumentHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListPayments(c.Context(), GetMembership(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
