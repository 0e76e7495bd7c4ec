package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry owned by userID together with its lines.
	FindEntryByID(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)

	// FindEntryForUpdate is FindEntryByID that also locks the entry row until
	// the unit of work ends.
	FindEntryForUpdate(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)

	// ListEntries lists entries of a book by date descending, then id
	// ascending, with denormalized lines. filter.Limit of 0 means no limit.
	ListEntries(ctx context.Context, userID string, bookID int64, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry persists the entry and its lines, filling in all ids.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error

	// UpdateEntryHeader overwrites date, description and status.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes every line of the entry and inserts lines in order.
	ReplaceLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error)

	// DeleteEntry removes the entry and, by cascade, its lines.
	DeleteEntry(ctx context.Context, userID string, entryID int64) error

	SetAttachment(ctx context.Context, entryID int64, attachment *string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
