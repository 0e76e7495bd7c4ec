package repositories

import "context"

// UnitOfWork exposes the repositories bound to a single storage transaction.
// Every repository obtained from it reads and writes through that transaction.
type UnitOfWork interface {
	Books() BookRepositoryFacade
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Reporting() ReportingRepositoryFacade
	Users() UserRepositoryFacade
}

// UnitOfWorkFunc is the body of a unit of work.
type UnitOfWorkFunc func(ctx context.Context, uow UnitOfWork) error

// UnitOfWorkFactory starts units of work. Each call is scoped to exactly one
// request operation.
type UnitOfWorkFactory interface {
	// WithinTx runs fn in a read-write transaction. The transaction commits
	// if fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn UnitOfWorkFunc) error

	// ReadSnapshot runs fn in a read-only transaction that sees a single
	// consistent snapshot of the store.
	ReadSnapshot(ctx context.Context, fn UnitOfWorkFunc) error
}
