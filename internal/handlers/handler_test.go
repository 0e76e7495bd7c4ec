package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/handlers"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "handler-test-secret"
	testUserID = "user-1"
)

// handlerSuite wires the full router against mocked services.
type handlerSuite struct {
	suite.Suite
	router *gin.Engine
	token  string

	books     *MockBookService
	accounts  *MockAccountService
	journal   *MockJournalService
	balances  *MockBalanceService
	reporting *MockReportingService
	users     *MockUserService
	tokens    *MockTokenService
	google    *MockGoogleOAuthService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.books = new(MockBookService)
	s.accounts = new(MockAccountService)
	s.journal = new(MockJournalService)
	s.balances = new(MockBalanceService)
	s.reporting = new(MockReportingService)
	s.users = new(MockUserService)
	s.tokens = new(MockTokenService)
	s.google = new(MockGoogleOAuthService)

	cfg := &config.Config{
		IsProduction:       true,
		JWTSecret:          testSecret,
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "tests",
		AttachmentMaxBytes: 16,
		LoginRateLimit:     "2-M",
	}
	services := &portssvc.ServiceContainer{
		Book:        s.books,
		Account:     s.accounts,
		Journal:     s.journal,
		Balance:     s.balances,
		Reporting:   s.reporting,
		User:        s.users,
		Token:       s.tokens,
		GoogleOAuth: s.google,
	}

	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, services))

	token, _, err := utils.GenerateJWT(testUserID, testSecret, time.Hour, "tests")
	s.Require().NoError(err)
	s.token = token
}

func (s *handlerSuite) TearDownTest() {
	s.books.AssertExpectations(s.T())
	s.accounts.AssertExpectations(s.T())
	s.journal.AssertExpectations(s.T())
	s.balances.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
	s.tokens.AssertExpectations(s.T())
	s.google.AssertExpectations(s.T())
}

// do sends an authenticated request with an optional JSON body.
func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.serve(req)
}

func (s *handlerSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorded body into a generic map.
func (s *handlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// assertError checks the status and machine-readable code of an error response.
func (s *handlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, w.Code, w.Body.String())
	var resp handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(code, resp.Code)
	s.NotEmpty(resp.Error)
}
