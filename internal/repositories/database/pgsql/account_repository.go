package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxAccountRepository persists the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, book_id, name, account_type, code, category, parent_id`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(&m.AccountID, &m.UserID, &m.BookID, &m.Name, &m.AccountType, &m.Code, &m.Category, &m.ParentID)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// FindAccountByID retrieves a single account owned by the user.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND user_id = $2;`
	acc, err := scanAccount(r.q.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("account %d", accountID))
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the accounts of the book among the given ids.
// The rows are locked FOR SHARE so they cannot be deleted before the
// surrounding unit of work commits.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, bookID int64, accountIDs []int64) (map[int64]domain.Account, error) {
	found := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return found, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE account_id = ANY($1) AND user_id = $2 AND book_id = $3
		FOR SHARE;`
	rows, err := r.q.Query(ctx, query, accountIDs, userID, bookID)
	if err != nil {
		return nil, translateError(err, "failed to query accounts by ids")
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan account row")
		}
		found[acc.AccountID] = acc
	}
	return found, translateError(rows.Err(), "error iterating account rows")
}

// ListAccounts retrieves the chart of accounts of a book ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, bookID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE user_id = $1 AND book_id = $2
		ORDER BY code, account_id;`
	rows, err := r.q.Query(ctx, query, userID, bookID)
	if err != nil {
		return nil, translateError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan account row")
		}
		accounts = append(accounts, acc)
	}
	return accounts, translateError(rows.Err(), "error iterating account rows")
}

func (r *PgxAccountRepository) AccountHasLines(ctx context.Context, accountID int64) (bool, error) {
	var used bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`, accountID).Scan(&used)
	if err != nil {
		return false, translateError(err, fmt.Sprintf("failed to inspect account %d", accountID))
	}
	return used, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		INSERT INTO accounts (user_id, book_id, name, account_type, code, category, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;`
	err := r.q.QueryRow(ctx, query, m.UserID, m.BookID, m.Name, m.AccountType, m.Code, m.Category, m.ParentID).
		Scan(&account.AccountID)
	return translateError(err, fmt.Sprintf("account code %q", account.Code))
}

// UpdateAccount overwrites the mutable columns of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, code = $3, category = $4, parent_id = $5
		WHERE account_id = $6 AND user_id = $7;`
	tag, err := r.q.Exec(ctx, query, m.Name, m.AccountType, m.Code, m.Category, m.ParentID, m.AccountID, m.UserID)
	if err != nil {
		return translateError(err, fmt.Sprintf("account code %q", account.Code))
	}
	return expectAffected(tag, fmt.Sprintf("account %d", account.AccountID))
}

// DeleteAccount removes an account. Journal lines and child accounts
// reference it with ON DELETE RESTRICT, which surfaces as a conflict.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, userID string, accountID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`, accountID, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("account %d", accountID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %d", accountID))
	}
	return nil
}
