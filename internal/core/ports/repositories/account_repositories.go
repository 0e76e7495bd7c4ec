package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID.
	FindAccountByID(ctx context.Context, userID string, accountID int64) (*domain.Account, error)

	// FindAccountsByIDs retrieves the subset of accountIDs that live in the
	// given book and are owned by userID. Missing ids are simply absent.
	FindAccountsByIDs(ctx context.Context, userID string, bookID int64, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves the chart of accounts of a book ordered by code.
	ListAccounts(ctx context.Context, userID string, bookID int64) ([]domain.Account, error)

	// AccountHasLines reports whether any journal line references the account.
	AccountHasLines(ctx context.Context, accountID int64) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and fills in its id.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount overwrites the mutable fields of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	DeleteAccount(ctx context.Context, userID string, accountID int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
