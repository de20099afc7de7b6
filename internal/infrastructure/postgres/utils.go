package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
)

// Querier abstrae pool y transacción: los adaptadores aceptan cualquiera de los
// dos, así el TxRunner puede atarlos a una tx sin duplicar queries.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isNoRows verifica si un error es pgx.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// errDuplicate envuelve una violación de unicidad en el sentinel de dominio,
// conservando la causa para el log.
func errDuplicate(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
}

// nullIfEmpty devuelve nil para strings vacíos, para columnas NULLables.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
