package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeAttachmentStore is an in-memory AttachmentStore.
type fakeAttachmentStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{blobs: map[string][]byte{}}
}

func (f *fakeAttachmentStore) PutAttachment(_ context.Context, name string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[name] = append([]byte(nil), content...)
	return nil
}

func (f *fakeAttachmentStore) GetAttachment(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blobs[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return b, nil
}

func (f *fakeAttachmentStore) DeleteAttachment(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, name)
	return nil
}

func (f *fakeAttachmentStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

// ledgerSuite wires every service to a fresh in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memory.Store
	attachments *fakeAttachmentStore
	svc         *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.attachments = newFakeAttachmentStore()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "tests"}
	s.svc = services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{
		UnitOfWork:  s.store,
		Attachments: s.attachments,
	})
}

// signup creates a user and returns its id and Default book id.
func (s *ledgerSuite) signup(username string) (string, int64) {
	user, err := s.svc.User.Signup(s.ctx, domain.NewUser{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	s.Require().NoError(err)
	books, err := s.svc.Book.ListBooks(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Require().Len(books, 1)
	return user.UserID, books[0].BookID
}

func (s *ledgerSuite) book(userID, name string) int64 {
	book, err := s.svc.Book.CreateBook(s.ctx, userID, name)
	s.Require().NoError(err)
	return book.BookID
}

func (s *ledgerSuite) account(userID string, bookID int64, code string, t domain.AccountType) int64 {
	acc, err := s.svc.Account.CreateAccount(s.ctx, userID, domain.Account{
		BookID:      bookID,
		Name:        string(t) + " " + code,
		AccountType: t,
		Code:        code,
		Category:    "General",
	})
	s.Require().NoError(err)
	return acc.AccountID
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func debit(accountID int64, amount string) domain.LineInput {
	return domain.LineInput{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(accountID int64, amount string) domain.LineInput {
	return domain.LineInput{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

func (s *ledgerSuite) post(userID string, bookID int64, date string, lines ...domain.LineInput) *domain.JournalEntry {
	entry, err := s.svc.Journal.PostEntry(s.ctx, userID, domain.NewEntry{
		BookID: bookID, Date: date, Description: "entry on " + date, Lines: lines,
	})
	s.Require().NoError(err)
	return entry
}

func mustDate(raw string) time.Time {
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		panic(err)
	}
	return t
}
