// Package memory is an in-process implementation of the repository ports.
// It backs the `memory` storage driver and the service tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

var errReadOnly = errors.New("cannot write in a read-only transaction")

type state struct {
	users    map[string]domain.User
	books    map[int64]domain.Book
	accounts map[int64]domain.Account
	entries  map[int64]domain.JournalEntry // Lines is always nil here
	lines    map[int64]domain.JournalLine

	nextBookID    int64
	nextAccountID int64
	nextEntryID   int64
	nextLineID    int64
}

func newState() *state {
	return &state{
		users:    map[string]domain.User{},
		books:    map[int64]domain.Book{},
		accounts: map[int64]domain.Account{},
		entries:  map[int64]domain.JournalEntry{},
		lines:    map[int64]domain.JournalLine{},
	}
}

func (s *state) clone() *state {
	c := &state{
		users:         make(map[string]domain.User, len(s.users)),
		books:         make(map[int64]domain.Book, len(s.books)),
		accounts:      make(map[int64]domain.Account, len(s.accounts)),
		entries:       make(map[int64]domain.JournalEntry, len(s.entries)),
		lines:         make(map[int64]domain.JournalLine, len(s.lines)),
		nextBookID:    s.nextBookID,
		nextAccountID: s.nextAccountID,
		nextEntryID:   s.nextEntryID,
		nextLineID:    s.nextLineID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.lines {
		c.lines[k] = v
	}
	return c
}

// Store is a UnitOfWorkFactory over in-memory maps. Writers are serialized
// and work on a copy that replaces the live state only on success, so a
// failed unit of work leaves nothing behind.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// WithinTx implements portsrepo.UnitOfWorkFactory.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.UnitOfWorkFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &unitOfWork{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// ReadSnapshot implements portsrepo.UnitOfWorkFactory.
func (s *Store) ReadSnapshot(ctx context.Context, fn portsrepo.UnitOfWorkFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, &unitOfWork{st: s.st, readOnly: true})
}

type unitOfWork struct {
	st       *state
	readOnly bool
}

func (u *unitOfWork) Books() portsrepo.BookRepositoryFacade       { return &bookRepository{u} }
func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade { return &accountRepository{u} }
func (u *unitOfWork) Journals() portsrepo.JournalRepositoryFacade { return &journalRepository{u} }
func (u *unitOfWork) Reporting() portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{u}
}
func (u *unitOfWork) Users() portsrepo.UserRepositoryFacade { return &userRepository{u} }

func (u *unitOfWork) writable() error {
	if u.readOnly {
		return errReadOnly
	}
	return nil
}

var (
	_ portsrepo.UnitOfWorkFactory = (*Store)(nil)
	_ portsrepo.UnitOfWork        = (*unitOfWork)(nil)
)
