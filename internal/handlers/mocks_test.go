package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookService) GetBook(ctx context.Context, userID string, bookID int64) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) CreateBook(ctx context.Context, userID string, name string) (*domain.Book, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) RenameBook(ctx context.Context, userID string, bookID int64, name string) (*domain.Book, error) {
	args := m.Called(ctx, userID, bookID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) DeleteBook(ctx context.Context, userID string, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, userID string, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, bookID int64) ([]domain.Account, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, userID, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, accountID int64) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID))
}
func (m *MockJournalService) ListEntries(ctx context.Context, userID string, bookID int64, window domain.DateRange, limit int, nextToken *string) (*domain.EntryPage, error) {
	args := m.Called(ctx, userID, bookID, window, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryPage), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, userID string, req domain.NewEntry) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, req))
}
func (m *MockJournalService) EditEntry(ctx context.Context, userID string, entryID int64, patch domain.EntryPatch) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID, patch))
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, userID string, entryID int64) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}
func (m *MockJournalService) SubmitEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID))
}
func (m *MockJournalService) ApproveEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID))
}
func (m *MockJournalService) RejectEntry(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID))
}
func (m *MockJournalService) AttachFile(ctx context.Context, userID string, entryID int64, filename string, content []byte) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, userID, entryID, filename, content))
}
func (m *MockJournalService) GetAttachment(ctx context.Context, userID string, entryID int64) (string, []byte, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) AccountBalance(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.AccountBalance, error) {
	args := m.Called(ctx, userID, accountID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}
func (m *MockBalanceService) Ledger(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.Ledger, error) {
	args := m.Called(ctx, userID, accountID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.TrialBalance, error) {
	args := m.Called(ctx, userID, bookID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, userID, bookID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, userID, bookID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}
func (m *MockUserService) Signup(ctx context.Context, req domain.NewUser) (*domain.User, error) {
	return m.user(m.Called(ctx, req))
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return m.user(m.Called(ctx, username, password))
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	return m.user(m.Called(ctx, info))
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)
