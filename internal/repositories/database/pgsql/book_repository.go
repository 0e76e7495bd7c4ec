package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

// PgxBookRepository persists books in the accounting_book table.
type PgxBookRepository struct {
	BaseRepository
}

var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

func (r *PgxBookRepository) FindBookByID(ctx context.Context, userID string, bookID int64) (*domain.Book, error) {
	query := `SELECT book_id, user_id, name, created_at FROM accounting_book WHERE book_id = $1 AND user_id = $2;`
	var m models.Book
	err := r.q.QueryRow(ctx, query, bookID, userID).Scan(&m.BookID, &m.UserID, &m.Name, &m.CreatedAt)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("book %d", bookID))
	}
	book := mapping.ToDomainBook(m)
	return &book, nil
}

func (r *PgxBookRepository) ListBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	query := `SELECT book_id, user_id, name, created_at FROM accounting_book WHERE user_id = $1 ORDER BY book_id;`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, translateError(err, "failed to list books")
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var m models.Book
		if err := rows.Scan(&m.BookID, &m.UserID, &m.Name, &m.CreatedAt); err != nil {
			return nil, translateError(err, "failed to scan book row")
		}
		books = append(books, mapping.ToDomainBook(m))
	}
	return books, translateError(rows.Err(), "error iterating book rows")
}

func (r *PgxBookRepository) BookHasContents(ctx context.Context, bookID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE book_id = $1)
		    OR EXISTS (SELECT 1 FROM journal_entries WHERE book_id = $1);`
	var used bool
	if err := r.q.QueryRow(ctx, query, bookID).Scan(&used); err != nil {
		return false, translateError(err, fmt.Sprintf("failed to inspect book %d", bookID))
	}
	return used, nil
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book *domain.Book) error {
	query := `INSERT INTO accounting_book (user_id, name) VALUES ($1, $2) RETURNING book_id, created_at;`
	err := r.q.QueryRow(ctx, query, book.UserID, book.Name).Scan(&book.BookID, &book.CreatedAt)
	return translateError(err, fmt.Sprintf("book name %q", book.Name))
}

func (r *PgxBookRepository) RenameBook(ctx context.Context, userID string, bookID int64, name string) error {
	query := `UPDATE accounting_book SET name = $1 WHERE book_id = $2 AND user_id = $3;`
	tag, err := r.q.Exec(ctx, query, name, bookID, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("book name %q", name))
	}
	return expectAffected(tag, fmt.Sprintf("book %d", bookID))
}

func (r *PgxBookRepository) DeleteBook(ctx context.Context, userID string, bookID int64) error {
	query := `DELETE FROM accounting_book WHERE book_id = $1 AND user_id = $2;`
	tag, err := r.q.Exec(ctx, query, bookID, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("book %d", bookID))
	}
	return expectAffected(tag, fmt.Sprintf("book %d", bookID))
}
