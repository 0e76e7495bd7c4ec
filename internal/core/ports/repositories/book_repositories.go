package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// BookReader defines read operations for book data
type BookReader interface {
	// FindBookByID returns the book if it exists and is owned by userID.
	FindBookByID(ctx context.Context, userID string, bookID int64) (*domain.Book, error)

	// ListBooks returns every book owned by userID.
	ListBooks(ctx context.Context, userID string) ([]domain.Book, error)

	// BookHasContents reports whether any account or journal entry lives in the book.
	BookHasContents(ctx context.Context, bookID int64) (bool, error)
}

// BookWriter defines write operations for book data
type BookWriter interface {
	// SaveBook persists a new book and fills in its id and creation time.
	SaveBook(ctx context.Context, book *domain.Book) error

	RenameBook(ctx context.Context, userID string, bookID int64, name string) error

	DeleteBook(ctx context.Context, userID string, bookID int64) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
