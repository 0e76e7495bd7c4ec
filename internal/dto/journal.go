package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineRequest is a single debit or credit line in a journal request.
type LineRequest struct {
	AccountID int64           `json:"account_id" binding:"required,gt=0"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to post a journal entry.
type CreateEntryRequest struct {
	BookID      int64         `json:"book_id" binding:"required,gt=0"`
	Date        string        `json:"date" binding:"required,ledger_date"`
	Description string        `json:"description"`
	Lines       []LineRequest `json:"lines" binding:"required,dive"`
}

// UpdateEntryRequest defines the fields of a journal entry that may be edited.
// When lines are given, they replace the existing lines.
type UpdateEntryRequest struct {
	Date        *string       `json:"date" binding:"omitempty,ledger_date"`
	Description *string       `json:"description"`
	Lines       []LineRequest `json:"lines" binding:"omitempty,dive"`
}

func toLineInputs(lines []LineRequest) []domain.LineInput {
	if lines == nil {
		return nil
	}
	inputs := make([]domain.LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = domain.LineInput{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return inputs
}

// ToDomain converts the request to a domain.NewEntry.
func (r CreateEntryRequest) ToDomain() domain.NewEntry {
	return domain.NewEntry{
		BookID:      r.BookID,
		Date:        r.Date,
		Description: r.Description,
		Lines:       toLineInputs(r.Lines),
	}
}

// ToPatch converts the request to a domain.EntryPatch.
func (r UpdateEntryRequest) ToPatch() domain.EntryPatch {
	return domain.EntryPatch{
		Date:        r.Date,
		Description: r.Description,
		Lines:       toLineInputs(r.Lines),
	}
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	DateRangeParams
	BookID    int64   `form:"book_id" binding:"required,gt=0"`
	Limit     *int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"next_token"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      int64           `json:"line_id"`
	AccountID   int64           `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       int64              `json:"entry_id"`
	BookID        int64              `json:"book_id"`
	Date          string             `json:"date"`
	Description   string             `json:"description"`
	Status        domain.EntryStatus `json:"status"`
	Attachment    *string            `json:"attachment"`
	Lines         []LineResponse     `json:"lines"`
	CreatedAt     time.Time          `json:"created_at"`
	LastUpdatedAt time.Time          `json:"last_updated_at"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"next_token,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		BookID:        e.BookID,
		Date:          e.Date.Format(domain.DateLayout),
		Description:   e.Description,
		Status:        e.Status,
		Attachment:    e.Attachment,
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToListEntriesResponse converts a domain.EntryPage to its DTO.
func ToListEntriesResponse(page *domain.EntryPage) ListEntriesResponse {
	entries := make([]EntryResponse, len(page.Entries))
	for i := range page.Entries {
		entries[i] = ToEntryResponse(&page.Entries[i])
	}
	return ListEntriesResponse{Entries: entries, NextToken: page.NextToken}
}
