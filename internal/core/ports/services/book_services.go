package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// BookReaderSvc defines read operations for books
type BookReaderSvc interface {
	// ListBooks returns every book owned by the user.
	ListBooks(ctx context.Context, userID string) ([]domain.Book, error)

	// GetBook returns the book if the user owns it, ErrNotFound otherwise.
	GetBook(ctx context.Context, userID string, bookID int64) (*domain.Book, error)
}

// BookWriterSvc defines write operations for books
type BookWriterSvc interface {
	CreateBook(ctx context.Context, userID string, name string) (*domain.Book, error)
	RenameBook(ctx context.Context, userID string, bookID int64, name string) (*domain.Book, error)

	// DeleteBook removes an empty book. A book with accounts or entries is a conflict.
	DeleteBook(ctx context.Context, userID string, bookID int64) error
}

// BookSvcFacade combines all book-related service interfaces
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
