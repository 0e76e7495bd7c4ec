package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
	"github.com/google/uuid"
)

// MinEntryLines is the smallest number of lines a journal entry may have.
const MinEntryLines = 2

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	attachments portsrepo.AttachmentStore
}

// JournalOption is a functional option for configuring the journal service
type JournalOption func(*journalService)

// WithAttachmentStore enables AttachFile and GetAttachment.
func WithAttachmentStore(store portsrepo.AttachmentStore) JournalOption {
	return func(s *journalService) {
		s.attachments = store
	}
}

// NewJournalService creates the journal engine.
func NewJournalService(uow portsrepo.UnitOfWorkFactory, options ...JournalOption) portssvc.JournalSvcFacade {
	svc := &journalService{BaseService: BaseService{uow: uow}}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// parseEntryDate parses a YYYY-MM-DD entry date.
func parseEntryDate(raw string) (time.Time, error) {
	date, err := time.Parse(domain.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError(fmt.Sprintf("date %q must be formatted as YYYY-MM-DD", raw))
	}
	return date, nil
}

// normalizeLines rounds every amount to 2 places and checks the shape of the
// line set. Rounding first keeps the stored lines equal to what was balanced.
func normalizeLines(inputs []domain.LineInput) ([]domain.LineInput, error) {
	if len(inputs) < MinEntryLines {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("a journal entry needs at least %d lines", MinEntryLines))
	}
	lines := make([]domain.LineInput, len(inputs))
	for i, in := range inputs {
		in.Debit = in.Debit.Round(2)
		in.Credit = in.Credit.Round(2)
		if err := domain.ValidateLine(i, in); err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		lines[i] = in
	}
	return lines, nil
}

// resolveLines maps the inputs to journal lines, requiring every account to
// belong to (userID, bookID), and enforces the balance invariant.
func resolveLines(ctx context.Context, uow portsrepo.UnitOfWork, userID string, bookID int64, inputs []domain.LineInput) ([]domain.JournalLine, error) {
	ids := make([]int64, 0, len(inputs))
	seen := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if !seen[in.AccountID] {
			seen[in.AccountID] = true
			ids = append(ids, in.AccountID)
		}
	}
	accounts, err := uow.Accounts().FindAccountsByIDs(ctx, userID, bookID, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %d in book %d", id, bookID))
		}
	}

	if !accounting.IsBalanced(inputs) {
		debit, credit := domain.Totals(inputs)
		return nil, fmt.Errorf("debits %s != credits %s: %w", debit.StringFixed(2), credit.StringFixed(2), apperrors.ErrUnbalanced)
	}

	lines := make([]domain.JournalLine, len(inputs))
	for i, in := range inputs {
		acc := accounts[in.AccountID]
		lines[i] = domain.JournalLine{
			AccountID:   in.AccountID,
			Debit:       in.Debit,
			Credit:      in.Credit,
			AccountCode: acc.Code,
			AccountName: acc.Name,
		}
	}
	return lines, nil
}

// withDisplayFields copies account code and name from resolved onto saved lines.
func withDisplayFields(saved, resolved []domain.JournalLine) []domain.JournalLine {
	for i := range saved {
		if i < len(resolved) {
			saved[i].AccountCode = resolved[i].AccountCode
			saved[i].AccountName = resolved[i].AccountName
		}
	}
	return saved
}

func (s *journalService) PostEntry(ctx context.Context, userID string, req domain.NewEntry) (*domain.JournalEntry, error) {
	inputs, err := normalizeLines(req.Lines)
	if err != nil {
		return nil, err
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		UserID:      userID,
		BookID:      req.BookID,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.Draft,
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, req.BookID); err != nil {
			return err
		}
		resolved, err := resolveLines(ctx, uow, userID, req.BookID, inputs)
		if err != nil {
			return err
		}
		entry.Lines = resolved
		if err := uow.Journals().SaveEntry(ctx, entry); err != nil {
			return err
		}
		entry.Lines = withDisplayFields(entry.Lines, resolved)
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to post journal entry", slog.Int64("book_id", req.BookID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", entry.EntryID), slog.Int64("book_id", entry.BookID), slog.Int("lines", len(entry.Lines)))
	return entry, nil
}

func (s *journalService) EditEntry(ctx context.Context, userID string, entryID int64, patch domain.EntryPatch) (*domain.JournalEntry, error) {
	var inputs []domain.LineInput
	if patch.Lines != nil {
		var err error
		if inputs, err = normalizeLines(patch.Lines); err != nil {
			return nil, err
		}
	}
	var newDate *time.Time
	if patch.Date != nil {
		date, err := parseEntryDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		newDate = &date
	}

	var entry *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		current, err := uow.Journals().FindEntryForUpdate(ctx, userID, entryID)
		if err != nil {
			return err
		}
		if newDate != nil {
			current.Date = *newDate
		}
		if patch.Description != nil {
			current.Description = strings.TrimSpace(*patch.Description)
		}
		if inputs != nil {
			resolved, err := resolveLines(ctx, uow, userID, current.BookID, inputs)
			if err != nil {
				return err
			}
			if _, err := uow.Journals().ReplaceLines(ctx, entryID, resolved); err != nil {
				return err
			}
		}
		if err := uow.Journals().UpdateEntryHeader(ctx, *current); err != nil {
			return err
		}
		entry, err = uow.Journals().FindEntryByID(ctx, userID, entryID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to edit journal entry", slog.Int64("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry edited", slog.Int64("entry_id", entryID), slog.Bool("lines_replaced", inputs != nil))
	return entry, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, userID string, entryID int64) error {
	var attachment *string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		entry, err := uow.Journals().FindEntryForUpdate(ctx, userID, entryID)
		if err != nil {
			return err
		}
		attachment = entry.Attachment
		return uow.Journals().DeleteEntry(ctx, userID, entryID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete journal entry", slog.Int64("entry_id", entryID))
		return err
	}

	if attachment != nil {
		s.discardAttachment(ctx, *attachment)
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.Int64("entry_id", entryID))
	return nil
}

func (s *journalService) GetEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		entry, err = uow.Journals().FindEntryByID(ctx, userID, entryID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get journal entry", slog.Int64("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID string, bookID int64, window domain.DateRange, limit int, nextToken *string) (*domain.EntryPage, error) {
	filter := domain.EntryFilter{DateRange: window}
	if limit > 0 {
		filter.Limit = limit + 1 // one extra row tells us whether another page exists
	}
	if nextToken != nil && *nextToken != "" {
		date, id, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		filter.After = &domain.EntryCursor{Date: date, EntryID: id}
	}

	var entries []domain.JournalEntry
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, bookID); err != nil {
			return err
		}
		var err error
		entries, err = uow.Journals().ListEntries(ctx, userID, bookID, filter)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list journal entries", slog.Int64("book_id", bookID))
		return nil, err
	}

	page := &domain.EntryPage{Entries: entries}
	if limit > 0 && len(entries) > limit {
		page.Entries = entries[:limit]
		last := page.Entries[limit-1]
		token := pagination.EncodeEntryToken(last.Date, last.EntryID)
		page.NextToken = &token
	}
	return page, nil
}

// transition moves an entry to next if the workflow allows it.
func (s *journalService) transition(ctx context.Context, userID string, entryID int64, next domain.EntryStatus) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		entry, err = uow.Journals().FindEntryForUpdate(ctx, userID, entryID)
		if err != nil {
			return err
		}
		if !entry.Status.CanTransitionTo(next) {
			return fmt.Errorf("journal entry %d cannot move from %s to %s: %w", entryID, entry.Status, next, apperrors.ErrInvalidState)
		}
		entry.Status = next
		return uow.Journals().UpdateEntryHeader(ctx, *entry)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to change journal entry status",
			slog.Int64("entry_id", entryID), slog.String("status", string(next)))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry status changed", slog.Int64("entry_id", entryID), slog.String("status", string(next)))
	return entry, nil
}

func (s *journalService) SubmitEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return s.transition(ctx, userID, entryID, domain.Submitted)
}

func (s *journalService) ApproveEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return s.transition(ctx, userID, entryID, domain.Approved)
}

func (s *journalService) RejectEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return s.transition(ctx, userID, entryID, domain.Rejected)
}

var errNoAttachmentStore = apperrors.NewAppError(503, "attachment storage is not configured", apperrors.ErrInternal)

func (s *journalService) AttachFile(ctx context.Context, userID string, entryID int64, filename string, content []byte) (*domain.JournalEntry, error) {
	if s.attachments == nil {
		return nil, errNoAttachmentStore
	}
	if strings.TrimSpace(filename) == "" || len(content) == 0 {
		return nil, apperrors.NewValidationFailedError("a non-empty file is required")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := s.attachments.PutAttachment(ctx, name, content); err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.Int64("entry_id", entryID))
		return nil, err
	}

	var entry *domain.JournalEntry
	var previous *string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		entry, err = uow.Journals().FindEntryForUpdate(ctx, userID, entryID)
		if err != nil {
			return err
		}
		previous = entry.Attachment
		if err := uow.Journals().SetAttachment(ctx, entryID, &name); err != nil {
			return err
		}
		entry.Attachment = &name
		return nil
	})
	if err != nil {
		s.discardAttachment(ctx, name)
		s.LogFailure(ctx, err, "Failed to attach file", slog.Int64("entry_id", entryID))
		return nil, err
	}

	if previous != nil {
		s.discardAttachment(ctx, *previous)
	}
	s.LogInfo(ctx, "Attachment stored", slog.Int64("entry_id", entryID), slog.String("attachment", name))
	return entry, nil
}

func (s *journalService) GetAttachment(ctx context.Context, userID string, entryID int64) (string, []byte, error) {
	if s.attachments == nil {
		return "", nil, errNoAttachmentStore
	}
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return "", nil, err
	}
	if entry.Attachment == nil {
		return "", nil, apperrors.NewNotFoundError(fmt.Sprintf("attachment of journal entry %d", entryID))
	}
	content, err := s.attachments.GetAttachment(ctx, *entry.Attachment)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to read attachment", slog.Int64("entry_id", entryID))
		return "", nil, err
	}
	return *entry.Attachment, content, nil
}

// discardAttachment removes a blob that is no longer referenced. Failures
// only leave an orphaned blob behind, so they are logged and swallowed.
func (s *journalService) discardAttachment(ctx context.Context, name string) {
	if s.attachments == nil {
		return
	}
	if err := s.attachments.DeleteAttachment(ctx, name); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to delete attachment", slog.String("attachment", name))
	}
}
