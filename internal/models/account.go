package models

import "database/sql"

// Account is a row of the accounts table.
type Account struct {
	AccountID   int64         `db:"account_id"`
	UserID      string        `db:"user_id"`
	BookID      int64         `db:"book_id"`
	Name        string        `db:"name"`
	AccountType string        `db:"account_type"`
	Code        string        `db:"code"`
	Category    string        `db:"category"`
	ParentID    sql.NullInt64 `db:"parent_id"` // Nullable
}
