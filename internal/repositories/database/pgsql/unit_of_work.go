package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWorkFactory opens one database transaction per unit of work.
type PgxUnitOfWorkFactory struct {
	Pool *pgxpool.Pool
}

// NewUnitOfWorkFactory creates a factory over the given pool.
func NewUnitOfWorkFactory(pool *pgxpool.Pool) *PgxUnitOfWorkFactory {
	return &PgxUnitOfWorkFactory{Pool: pool}
}

var _ portsrepo.UnitOfWorkFactory = (*PgxUnitOfWorkFactory)(nil)

// Begin starts a new database transaction
func (f *PgxUnitOfWorkFactory) Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := f.Pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (f *PgxUnitOfWorkFactory) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (f *PgxUnitOfWorkFactory) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

func (f *PgxUnitOfWorkFactory) run(ctx context.Context, opts pgx.TxOptions, fn portsrepo.UnitOfWorkFunc) error {
	tx, err := f.Begin(ctx, opts)
	if err != nil {
		return err
	}
	defer f.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(ctx, &unitOfWork{base: BaseRepository{q: tx}}); err != nil {
		return err
	}
	return f.Commit(ctx, tx)
}

// WithinTx implements portsrepo.UnitOfWorkFactory.
func (f *PgxUnitOfWorkFactory) WithinTx(ctx context.Context, fn portsrepo.UnitOfWorkFunc) error {
	return f.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// ReadSnapshot implements portsrepo.UnitOfWorkFactory. Every query inside fn
// sees the same REPEATABLE READ snapshot.
func (f *PgxUnitOfWorkFactory) ReadSnapshot(ctx context.Context, fn portsrepo.UnitOfWorkFunc) error {
	return f.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

type unitOfWork struct {
	base BaseRepository
}

func (u *unitOfWork) Books() portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{BaseRepository: u.base}
}

func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: u.base}
}

func (u *unitOfWork) Journals() portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: u.base}
}

func (u *unitOfWork) Reporting() portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: u.base}
}

func (u *unitOfWork) Users() portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: u.base}
}
