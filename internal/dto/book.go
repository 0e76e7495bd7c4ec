package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// BookRequest is the body of create and rename book requests.
type BookRequest struct {
	Name string `json:"name" binding:"required"`
}

// BookResponse defines the data returned for a book.
type BookResponse struct {
	BookID    int64     `json:"book_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO
func ToBookResponse(book *domain.Book) BookResponse {
	return BookResponse{BookID: book.BookID, Name: book.Name, CreatedAt: book.CreatedAt}
}

// ToBookResponses converts a slice of domain.Book to []BookResponse.
func ToBookResponses(books []domain.Book) []BookResponse {
	res := make([]BookResponse, len(books))
	for i := range books {
		res[i] = ToBookResponse(&books[i])
	}
	return res
}
