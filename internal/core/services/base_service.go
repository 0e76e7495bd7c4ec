package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	uow portsrepo.UnitOfWorkFactory
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs err at error level unless it is an expected outcome
// (validation, not found, conflict...) that the caller reports as a 4xx.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isExpected(err) {
		s.LogDebug(ctx, msg, append([]any{slog.String("reason", err.Error())}, keyvals...)...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isExpected(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation, apperrors.ErrNotFound, apperrors.ErrConflict,
		apperrors.ErrUnbalanced, apperrors.ErrInvalidState, apperrors.ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// requireBook fails with ErrNotFound unless userID owns bookID.
func requireBook(ctx context.Context, uow portsrepo.UnitOfWork, userID string, bookID int64) (*domain.Book, error) {
	if bookID <= 0 {
		return nil, apperrors.NewValidationFailedError("book_id is required")
	}
	return uow.Books().FindBookByID(ctx, userID, bookID)
}

// requireText trims value and fails with ErrValidation when it is empty.
func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("%s is required", field))
	}
	return value, nil
}
