package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account owned by the user.
	GetAccount(ctx context.Context, userID string, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts of a book.
	ListAccounts(ctx context.Context, userID string, bookID int64) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account in account.BookID.
	CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error)

	// UpdateAccount applies the non-nil fields of the patch.
	UpdateAccount(ctx context.Context, userID string, accountID int64, patch domain.AccountPatch) (*domain.Account, error)

	// DeleteAccount removes an account no journal line or child account references.
	DeleteAccount(ctx context.Context, userID string, accountID int64) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
