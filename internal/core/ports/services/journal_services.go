package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)

	// ListEntries lists the entries of a book newest first. limit <= 0
	// returns everything; nextToken resumes a previous page.
	ListEntries(ctx context.Context, userID string, bookID int64, window domain.DateRange, limit int, nextToken *string) (*domain.EntryPage, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostEntry validates and persists a balanced entry in Draft status.
	PostEntry(ctx context.Context, userID string, req domain.NewEntry) (*domain.JournalEntry, error)

	// EditEntry re-validates and replaces the entry; a non-nil line set
	// replaces all existing lines.
	EditEntry(ctx context.Context, userID string, entryID int64, patch domain.EntryPatch) (*domain.JournalEntry, error)

	// DeleteEntry removes the entry, its lines and its attachment.
	DeleteEntry(ctx context.Context, userID string, entryID int64) error
}

// JournalWorkflowSvc moves entries through Draft -> Submitted -> Approved|Rejected.
type JournalWorkflowSvc interface {
	SubmitEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)
	ApproveEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)
	RejectEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error)
}

// JournalAttachmentSvc manages the single attachment of an entry.
type JournalAttachmentSvc interface {
	// AttachFile stores content under a generated name and records it on the entry.
	AttachFile(ctx context.Context, userID string, entryID int64, filename string, content []byte) (*domain.JournalEntry, error)

	// GetAttachment returns the stored name and content.
	GetAttachment(ctx context.Context, userID string, entryID int64) (string, []byte, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalWorkflowSvc
	JournalAttachmentSvc
}
