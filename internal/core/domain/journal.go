package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the workflow state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "Draft"
	Submitted EntryStatus = "Submitted"
	Approved  EntryStatus = "Approved"
	Rejected  EntryStatus = "Rejected"
)

var allowedTransitions = map[EntryStatus][]EntryStatus{
	Draft:     {Submitted},
	Submitted: {Approved, Rejected},
}

// CanTransitionTo reports whether moving from s to next is a forward step
// of the Draft -> Submitted -> Approved|Rejected workflow.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JournalEntry is a dated, balanced set of journal lines within one book.
type JournalEntry struct {
	EntryID     int64         `json:"entryID"`
	UserID      string        `json:"userID"` // owner
	BookID      int64         `json:"bookID"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Status      EntryStatus   `json:"status"`
	Attachment  *string       `json:"attachment,omitempty"` // generated blob filename
	Lines       []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit or credit against a single account.
type JournalLine struct {
	LineID    int64           `json:"lineID"`
	EntryID   int64           `json:"entryID"`
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`

	// Denormalized for display, filled on reads only.
	AccountCode string `json:"accountCode,omitempty"`
	AccountName string `json:"accountName,omitempty"`
}

// LineInput is a journal line as supplied by a caller.
type LineInput struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// NewEntry is the caller-supplied content of a journal entry to post.
type NewEntry struct {
	BookID      int64
	Date        string // YYYY-MM-DD
	Description string
	Lines       []LineInput
}

// EntryPatch lists the entry fields an edit may touch. When Lines is
// non-nil the whole line set is replaced.
type EntryPatch struct {
	Date        *string
	Description *string
	Lines       []LineInput
}

// EntryCursor is the position of the last entry of a listed page.
type EntryCursor struct {
	Date    time.Time
	EntryID int64
}

// EntryFilter narrows a journal listing.
type EntryFilter struct {
	DateRange
	Limit int          // 0 means no limit
	After *EntryCursor // resume after this entry
}

// EntryPage is one page of journal entries.
type EntryPage struct {
	Entries   []JournalEntry
	NextToken *string
}

// Totals returns the debit and credit sums of the lines, each rounded to 2 places.
func Totals(lines []LineInput) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit.Round(2), credit.Round(2)
}

// ValidateLine checks a single line: it names an account and neither amount
// is negative. A line may carry both sides, or neither.
func ValidateLine(i int, l LineInput) error {
	if l.AccountID <= 0 {
		return fmt.Errorf("line %d: account_id is required", i)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("line %d: debit and credit must not be negative", i)
	}
	return nil
}
