package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID     int64          `db:"entry_id"`
	UserID      string         `db:"user_id"`
	BookID      int64          `db:"book_id"`
	EntryDate   time.Time      `db:"entry_date"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	Attachment  sql.NullString `db:"attachment"`
	AuditFields
}

// JournalLine is a row of the journal_lines table, optionally joined with
// the code and name of its account.
type JournalLine struct {
	LineID      int64           `db:"line_id"`
	EntryID     int64           `db:"entry_id"`
	AccountID   int64           `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AccountCode string          `db:"code"`
	AccountName string          `db:"name"`
}
