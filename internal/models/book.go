package models

import "time"

// Book is a row of the accounting_book table.
type Book struct {
	BookID    int64     `db:"book_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
