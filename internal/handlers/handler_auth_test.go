package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// public sends an unauthenticated JSON request.
func (s *AuthHandlerTestSuite) public(method, path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req)
}

func (s *AuthHandlerTestSuite) TestRegister() {
	s.users.On("Signup", mock.Anything, domain.NewUser{Username: "ana", Email: "ana@example.com", Password: "password123"}).
		Return(&domain.User{UserID: "u-ana", Username: "ana", Email: "ana@example.com"}, nil).Once()

	w := s.public(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "ana", "email": "ana@example.com", "password": "password123",
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "password")
}

func (s *AuthHandlerTestSuite) TestRegisterValidation() {
	w := s.public(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "ana", "email": "not-an-email", "password": "password123",
	})
	s.assertError(w, http.StatusBadRequest, "invalid_argument")

	s.users.On("Signup", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("username already taken")).Once()
	w = s.public(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "ana", "email": "ana@example.com", "password": "password123",
	})
	s.assertError(w, http.StatusConflict, "conflict")
}

func (s *AuthHandlerTestSuite) TestLogin() {
	user := &domain.User{UserID: "u-ana", Username: "ana"}
	expires := time.Now().Add(time.Hour)
	s.users.On("AuthenticateUser", mock.Anything, "ana", "password123").Return(user, nil).Once()
	s.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", expires, nil).Once()

	w := s.public(http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "ana", "password": "password123"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("signed-token", resp.AccessToken)
	s.Equal("Bearer", resp.TokenType)
	s.Equal(expires.Unix(), resp.ExpiresAt)
}

func (s *AuthHandlerTestSuite) TestLoginIsRateLimited() {
	s.users.On("AuthenticateUser", mock.Anything, "ana", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Twice()

	creds := map[string]any{"username": "ana", "password": "wrong"}
	s.assertError(s.public(http.MethodPost, "/api/v1/auth/login", creds), http.StatusUnauthorized, "unauthorized")
	s.assertError(s.public(http.MethodPost, "/api/v1/auth/login", creds), http.StatusUnauthorized, "unauthorized")

	w := s.public(http.MethodPost, "/api/v1/auth/login", creds)
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *AuthHandlerTestSuite) TestGoogleIDTokenLogin() {
	info := &domain.GoogleUserInfo{Subject: "g-1", Email: "ana@example.com"}
	user := &domain.User{UserID: "u-ana", Email: "ana@example.com"}
	s.google.On("ValidateGoogleIDToken", mock.Anything, "id-token").Return(info, nil).Once()
	s.users.On("FindOrCreateGoogleUser", mock.Anything, *info).Return(user, nil).Once()
	s.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", time.Now().Add(time.Hour), nil).Once()

	w := s.public(http.MethodPost, "/api/v1/auth/google", map[string]any{"id_token": "id-token"})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "signed-token")

	s.google.On("ValidateGoogleIDToken", mock.Anything, "forged").Return(nil, apperrors.ErrUnauthorized).Once()
	w = s.public(http.MethodPost, "/api/v1/auth/google", map[string]any{"id_token": "forged"})
	s.assertError(w, http.StatusUnauthorized, "unauthorized")
}

func (s *AuthHandlerTestSuite) TestGoogleRedirectFlow() {
	s.google.On("GenerateStateString", mock.Anything).Return("state-1", nil).Once()
	s.google.On("GetGoogleLoginURL", mock.Anything, "state-1").Return("https://accounts.google.com/o/oauth2/auth?state=state-1").Once()

	w := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil))
	s.Equal(http.StatusTemporaryRedirect, w.Code)
	s.True(strings.HasPrefix(w.Header().Get("Location"), "https://accounts.google.com/"))
	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)
	s.Equal("state-1", cookies[0].Value)

	token := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]any{"id_token": "id-token"})
	info := &domain.GoogleUserInfo{Subject: "g-1", Email: "ana@example.com"}
	user := &domain.User{UserID: "u-ana"}
	s.google.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(token, nil).Once()
	s.google.On("ValidateGoogleIDToken", mock.Anything, "id-token").Return(info, nil).Once()
	s.users.On("FindOrCreateGoogleUser", mock.Anything, *info).Return(user, nil).Once()
	s.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed-token", time.Now().Add(time.Hour), nil).Once()

	q := url.Values{"state": {"state-1"}, "code": {"auth-code"}}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?"+q.Encode(), nil)
	req.AddCookie(cookies[0])
	w = s.serve(req)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), "signed-token")
}

func (s *AuthHandlerTestSuite) TestGoogleCallbackRejectsBadState() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=x", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	s.assertError(s.serve(req), http.StatusUnauthorized, "unauthorized")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=x", nil)
	s.assertError(s.serve(req), http.StatusUnauthorized, "unauthorized")
}

func (s *AuthHandlerTestSuite) TestCurrentUser() {
	s.users.On("GetUserByID", mock.Anything, testUserID).
		Return(&domain.User{UserID: testUserID, Username: "ana", PasswordHash: "secret-hash"}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/users/me", nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"ana"`)
	s.NotContains(w.Body.String(), "secret-hash")
}

func (s *AuthHandlerTestSuite) TestHealth() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
}
