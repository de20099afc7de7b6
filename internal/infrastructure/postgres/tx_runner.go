package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tradelink-ng/edibridge-api/internal/application/auth"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
)

// Asegura que TxRunner implementa los puertos transaccionales de la aplicación.
var _ auth.RegistrationTxRunner = (*TxRunner)(nil)
var _ usecase.InviteTxRunner = (*TxRunner)(nil)
var _ usecase.DocumentTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción con los repos del registro: usuario,
// empresa y membresía se persisten juntos o ninguno.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	cuRepo repository.CompanyUserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCompanyRepository(tx), NewCompanyUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvite inicia una transacción para invitar a un miembro: usuario nuevo y
// membresía en una sola unidad.
func (r *TxRunner) RunInvite(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	cuRepo repository.CompanyUserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewCompanyUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocument inicia una transacción para documento + sobre EDI.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(
	txRepo repository.EDITransactionRepository,
	poRepo repository.PurchaseOrderRepository,
	invRepo repository.InvoiceRepository,
	payRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewEDITransactionRepository(tx),
		NewPurchaseOrderRepository(tx),
		NewInvoiceRepository(tx),
		NewPaymentRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
