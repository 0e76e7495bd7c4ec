package domain

import "time"

// DefaultBookName is the book every new user starts with.
const DefaultBookName = "Default"

// Book is an isolated accounting ledger owned by a single user.
// Accounts and journal entries never cross book boundaries.
type Book struct {
	BookID    int64     `json:"bookID"`
	UserID    string    `json:"userID"` // owner
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
