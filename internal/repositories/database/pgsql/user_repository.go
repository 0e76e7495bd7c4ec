package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxUserRepository persists users.
type PgxUserRepository struct {
	BaseRepository
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, email, first_name, last_name, contact, password_hash, google_subject, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Username, &m.Email, &m.FirstName, &m.LastName,
		&m.Contact, &m.PasswordHash, &m.GoogleSubject, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("user %s", userID))
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1;`, username))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("user %q", username))
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("user with email %q", email))
	}
	return user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, email, first_name, last_name, contact, password_hash, google_subject)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.q.Exec(ctx, query, m.UserID, m.Username, m.Email, m.FirstName, m.LastName,
		m.Contact, m.PasswordHash, m.GoogleSubject)
	return translateError(err, "username or email")
}

func (r *PgxUserRepository) SetGoogleSubject(ctx context.Context, userID, subject string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET google_subject = $1, last_updated_at = NOW() WHERE user_id = $2;`, subject, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("user %s", userID))
	}
	return expectAffected(tag, fmt.Sprintf("user %s", userID))
}
