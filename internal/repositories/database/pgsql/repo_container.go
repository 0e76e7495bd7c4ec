package pgsql

import (
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres unit of work with the given
// attachment store.
func NewRepositoryProvider(dbPool *pgxpool.Pool, attachments portsrepo.AttachmentStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:  NewUnitOfWorkFactory(dbPool),
		Attachments: attachments,
	}
}
