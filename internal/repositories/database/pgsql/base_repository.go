package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes translated into application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgInvalidTextRepr     = "22P02"
	pgNumericOutOfRange   = "22003"
)

// querier is the subset of pgx shared by pgx.Tx and *pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	q querier
}

// translateError converts driver errors into the application error taxonomy
// so that raw pgx errors never leave the repository layer.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s (%s): %w", what, pgErr.ConstraintName, apperrors.ErrDuplicate)
		case pgForeignKeyViolation:
			// Deleting a referenced row vs. inserting a dangling reference.
			if strings.HasPrefix(pgErr.Message, "update or delete") {
				return fmt.Errorf("%s is still referenced (%s): %w", what, pgErr.ConstraintName, apperrors.ErrConflict)
			}
			return fmt.Errorf("%s references a missing row (%s): %w", what, pgErr.ConstraintName, apperrors.ErrNotFound)
		case pgCheckViolation, pgNotNullViolation, pgInvalidTextRepr, pgNumericOutOfRange:
			return fmt.Errorf("%s: %s: %w", what, pgErr.Message, apperrors.ErrValidation)
		}
	}
	return apperrors.NewAppError(500, what, err)
}

// expectAffected turns a zero-row update or delete into ErrNotFound.
func expectAffected(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}
