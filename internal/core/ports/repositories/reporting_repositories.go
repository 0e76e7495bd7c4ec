package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// ReportingRepositoryFacade defines the aggregate reads the reports are built from.
type ReportingRepositoryFacade interface {
	// AccountTotals returns raw debit and credit sums per account of the book,
	// restricted to entries inside the date range. Accounts without lines
	// are omitted.
	AccountTotals(ctx context.Context, userID string, bookID int64, window domain.DateRange) (map[int64]domain.AccountTotals, error)

	// LedgerLines returns the lines of an account ordered by line id,
	// restricted to entries inside the date range.
	LedgerLines(ctx context.Context, userID string, accountID int64, window domain.DateRange) ([]domain.LedgerLine, error)
}
