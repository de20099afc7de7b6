package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta la escritura documento+sobre EDI en una transacción:
// la fila de EDITransaction (la que cuenta contra el techo mensual) y la fila
// del documento se persisten juntas o ninguna.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(
		txRepo repository.EDITransactionRepository,
		poRepo repository.PurchaseOrderRepository,
		invRepo repository.InvoiceRepository,
		payRepo repository.PaymentRepository,
	) error) error
}

// DocumentService casos de uso de documentos EDI (850/810/820) y sus sobres.
// Sin parser: los documentos se registran con sus campos, el contenido X12 no
// se interpreta aquí.
type DocumentService struct {
	txRepo      repository.EDITransactionRepository
	poRepo      repository.PurchaseOrderRepository
	invRepo     repository.InvoiceRepository
	payRepo     repository.PaymentRepository
	partnerRepo repository.TradingPartnerRepository
	txRunner    DocumentTxRunner
}

// NewDocumentService construye el servicio de documentos.
func NewDocumentService(
	txRepo repository.EDITransactionRepository,
	poRepo repository.PurchaseOrderRepository,
	invRepo repository.InvoiceRepository,
	payRepo repository.PaymentRepository,
	partnerRepo repository.TradingPartnerRepository,
	txRunner DocumentTxRunner,
) *DocumentService {
	return &DocumentService{
		txRepo:      txRepo,
		poRepo:      poRepo,
		invRepo:     invRepo,
		payRepo:     payRepo,
		partnerRepo: partnerRepo,
		txRunner:    txRunner,
	}
}

// ListTransactions pagina los sobres EDI del tenant.
func (s *DocumentService) ListTransactions(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.TransactionResponse, error) {
	page.DefaultPage()
	list, err := s.txRepo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, toTransactionResponse(tx))
	}
	return out, nil
}

// GetTransaction obtiene un sobre EDI del tenant.
func (s *DocumentService) GetTransaction(ctx context.Context, m *entity.Membership, id string) (*dto.TransactionResponse, error) {
	tx, err := s.txRepo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// CreatePurchaseOrder registra una orden de compra (850) con su sobre.
func (s *DocumentService) CreatePurchaseOrder(ctx context.Context, m *entity.Membership, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.PONumber == "" || in.BuyerID == "" || in.SellerID == "" {
		return nil, domain.ErrInvalidInput
	}
	poDate, err := parseDate(in.PODate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	total, err := decimal.NewFromString(in.TotalAmount)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	// El partner de contraparte debe existir y ser del tenant.
	if err := s.requirePartner(ctx, m, in.BuyerID, in.SellerID); err != nil {
		return nil, err
	}

	now := time.Now()
	envelope := s.newEnvelope(m, in.SellerID, entity.TxSetPurchaseOrder, in.ControlNumber, in.Direction, now)
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		CompanyID:     m.Company.ID,
		TransactionID: envelope.ID,
		PONumber:      in.PONumber,
		PODate:        poDate,
		BuyerID:       in.BuyerID,
		SellerID:      in.SellerID,
		CurrencyCode:  currencyOr(in.CurrencyCode),
		TotalAmount:   total,
		PaymentTerms:  in.PaymentTerms,
		Status:        entity.TxStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.txRunner.RunDocument(ctx, func(
		txRepo repository.EDITransactionRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		if err := txRepo.Create(ctx, envelope); err != nil {
			return err
		}
		return poRepo.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// GetPurchaseOrder obtiene una orden de compra del tenant.
func (s *DocumentService) GetPurchaseOrder(ctx context.Context, m *entity.Membership, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := s.poRepo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(po), nil
}

// ListPurchaseOrders pagina las órdenes de compra del tenant.
func (s *DocumentService) ListPurchaseOrders(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	list, err := s.poRepo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return out, nil
}

// CreateInvoice registra una factura (810) con su sobre.
func (s *DocumentService) CreateInvoice(ctx context.Context, m *entity.Membership, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.InvoiceNumber == "" || in.SellerID == "" || in.BuyerID == "" {
		return nil, domain.ErrInvalidInput
	}
	invDate, err := parseDate(in.InvoiceDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	subtotal, err := decimal.NewFromString(in.Subtotal)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	tax := decimal.Zero
	if in.TaxAmount != "" {
		if tax, err = decimal.NewFromString(in.TaxAmount); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	total, err := decimal.NewFromString(in.TotalAmount)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var due *time.Time
	if in.DueDate != "" {
		d, err := parseDate(in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		due = &d
	}
	if err := s.requirePartner(ctx, m, in.BuyerID, in.SellerID); err != nil {
		return nil, err
	}

	now := time.Now()
	envelope := s.newEnvelope(m, in.BuyerID, entity.TxSetInvoice, in.ControlNumber, in.Direction, now)
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		CompanyID:     m.Company.ID,
		TransactionID: envelope.ID,
		InvoiceNumber: in.InvoiceNumber,
		InvoiceDate:   invDate,
		POID:          in.POID,
		SellerID:      in.SellerID,
		BuyerID:       in.BuyerID,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		TotalAmount:   total,
		CurrencyCode:  currencyOr(in.CurrencyCode),
		DueDate:       due,
		Status:        entity.TxStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.txRunner.RunDocument(ctx, func(
		txRepo repository.EDITransactionRepository,
		_ repository.PurchaseOrderRepository,
		invRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		if err := txRepo.Create(ctx, envelope); err != nil {
			return err
		}
		return invRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// GetInvoice obtiene una factura del tenant.
func (s *DocumentService) GetInvoice(ctx context.Context, m *entity.Membership, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.invRepo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices pagina las facturas del tenant.
func (s *DocumentService) ListInvoices(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := s.invRepo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// CreatePayment registra un pago (820) con su sobre.
func (s *DocumentService) CreatePayment(ctx context.Context, m *entity.Membership, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.PaymentNumber == "" || in.PayerID == "" || in.PayeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	payDate, err := parseDate(in.PaymentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	method := in.Method
	if method == "" {
		method = "ACH"
	}
	if err := s.requirePartner(ctx, m, in.PayerID, in.PayeeID); err != nil {
		return nil, err
	}

	now := time.Now()
	envelope := s.newEnvelope(m, in.PayeeID, entity.TxSetPayment, in.ControlNumber, in.Direction, now)
	pay := &entity.Payment{
		ID:            uuid.New().String(),
		CompanyID:     m.Company.ID,
		TransactionID: envelope.ID,
		PaymentNumber: in.PaymentNumber,
		PaymentDate:   payDate,
		PayerID:       in.PayerID,
		PayeeID:       in.PayeeID,
		Amount:        amount,
		Method:        method,
		CurrencyCode:  currencyOr(in.CurrencyCode),
		Status:        entity.TxStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.txRunner.RunDocument(ctx, func(
		txRepo repository.EDITransactionRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.InvoiceRepository,
		payRepo repository.PaymentRepository,
	) error {
		if err := txRepo.Create(ctx, envelope); err != nil {
			return err
		}
		return payRepo.Create(ctx, pay)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(pay), nil
}

// GetPayment obtiene un pago del tenant.
func (s *DocumentService) GetPayment(ctx context.Context, m *entity.Membership, id string) (*dto.PaymentResponse, error) {
	p, err := s.payRepo.GetByID(ctx, m.Company.ID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(p), nil
}

// ListPayments pagina los pagos del tenant.
func (s *DocumentService) ListPayments(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := s.payRepo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// requirePartner valida que ambos partners existan y pertenezcan al tenant.
func (s *DocumentService) requirePartner(ctx context.Context, m *entity.Membership, ids ...string) error {
	for _, id := range ids {
		p, err := s.partnerRepo.GetByID(ctx, m.Company.ID, id)
		if err != nil {
			return err
		}
		if p == nil || !p.IsActive {
			return domain.ErrNotFound
		}
	}
	return nil
}

// newEnvelope construye el sobre EDITransaction de un documento nuevo.
func (s *DocumentService) newEnvelope(m *entity.Membership, partnerID, setCode, controlNumber, direction string, now time.Time) *entity.EDITransaction {
	if direction != entity.DirectionInbound {
		direction = entity.DirectionOutbound
	}
	return &entity.EDITransaction{
		ID:                 uuid.New().String(),
		CompanyID:          m.Company.ID,
		PartnerID:          partnerID,
		TransactionSetCode: setCode,
		ControlNumber:      controlNumber,
		Direction:          direction,
		Status:             entity.TxStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func currencyOr(code string) string {
	if code == "" {
		return "NGN"
	}
	return code
}

func toTransactionResponse(tx *entity.EDITransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:                 tx.ID,
		PartnerID:          tx.PartnerID,
		TransactionSetCode: tx.TransactionSetCode,
		ControlNumber:      tx.ControlNumber,
		Direction:          tx.Direction,
		Status:             tx.Status,
		CreatedAt:          tx.CreatedAt,
	}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:            po.ID,
		TransactionID: po.TransactionID,
		PONumber:      po.PONumber,
		PODate:        po.PODate.Format("2006-01-02"),
		BuyerID:       po.BuyerID,
		SellerID:      po.SellerID,
		CurrencyCode:  po.CurrencyCode,
		TotalAmount:   po.TotalAmount.StringFixed(2),
		PaymentTerms:  po.PaymentTerms,
		Status:        po.Status,
		CreatedAt:     po.CreatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		TransactionID: inv.TransactionID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
		POID:          inv.POID,
		SellerID:      inv.SellerID,
		BuyerID:       inv.BuyerID,
		Subtotal:      inv.Subtotal.StringFixed(2),
		TaxAmount:     inv.TaxAmount.StringFixed(2),
		TotalAmount:   inv.TotalAmount.StringFixed(2),
		CurrencyCode:  inv.CurrencyCode,
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format("2006-01-02")
	}
	return out
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		PaymentNumber: p.PaymentNumber,
		PaymentDate:   p.PaymentDate.Format("2006-01-02"),
		PayerID:       p.PayerID,
		PayeeID:       p.PayeeID,
		Amount:        p.Amount.StringFixed(2),
		Method:        p.Method,
		CurrencyCode:  p.CurrencyCode,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}
