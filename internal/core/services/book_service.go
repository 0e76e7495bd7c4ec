package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

type bookService struct {
	BaseService
}

// NewBookService creates the book directory service.
func NewBookService(uow portsrepo.UnitOfWorkFactory) portssvc.BookSvcFacade {
	return &bookService{BaseService: BaseService{uow: uow}}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) ListBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	var books []domain.Book
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		books, err = uow.Books().ListBooks(ctx, userID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list books")
		return nil, err
	}
	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, userID string, bookID int64) (*domain.Book, error) {
	var book *domain.Book
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		book, err = requireBook(ctx, uow, userID, bookID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get book", slog.Int64("book_id", bookID))
		return nil, err
	}
	return book, nil
}

func (s *bookService) CreateBook(ctx context.Context, userID string, name string) (*domain.Book, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	book := &domain.Book{UserID: userID, Name: name}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		return uow.Books().SaveBook(ctx, book)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create book", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Book created", slog.Int64("book_id", book.BookID))
	return book, nil
}

func (s *bookService) RenameBook(ctx context.Context, userID string, bookID int64, name string) (*domain.Book, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	var book *domain.Book
	err = s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, bookID); err != nil {
			return err
		}
		if err := uow.Books().RenameBook(ctx, userID, bookID, name); err != nil {
			return err
		}
		book, err = uow.Books().FindBookByID(ctx, userID, bookID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to rename book", slog.Int64("book_id", bookID))
		return nil, err
	}
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, userID string, bookID int64) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, bookID); err != nil {
			return err
		}
		used, err := uow.Books().BookHasContents(ctx, bookID)
		if err != nil {
			return err
		}
		if used {
			return apperrors.NewConflictError(fmt.Sprintf("book %d still has accounts or journal entries", bookID))
		}
		return uow.Books().DeleteBook(ctx, userID, bookID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete book", slog.Int64("book_id", bookID))
		return err
	}
	s.LogInfo(ctx, "Book deleted", slog.Int64("book_id", bookID))
	return nil
}
