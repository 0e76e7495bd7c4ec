package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles Google sign-in, both with an ID token obtained
// by the client and through the server-side redirect flow.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	frontendBaseURL    string
	secureCookies      bool
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	frontendBaseURL string,
	secureCookies bool,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		frontendBaseURL:    strings.TrimRight(frontendBaseURL, "/"),
		secureCookies:      secureCookies,
	}
}

// LoginWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Validates the ID token, finds or creates the user by email and returns a JWT.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google [post]
func (h *GoogleOAuthHandler) LoginWithIDToken(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	info, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "Failed to validate Google ID token")
		return
	}
	h.signIn(c, info, func(user *domain.User) { issueToken(c, h.tokenService, user) })
}

// RedirectToGoogle godoc
// @Summary Start the Google OAuth flow
// @Description Redirects the browser to Google's consent screen.
// @Tags auth
// @Success 307
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// Callback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code and signs the user in. Redirects to the frontend with the token when FRONTEND_BASE_URL is set, otherwise returns it as JSON.
// @Tags auth
// @Produce  json
// @Param   state query string true "OAuth state"
// @Param   code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		logger.Warn("OAuth state mismatch")
		respondError(c, fmt.Errorf("invalid oauth state: %w", apperrors.ErrUnauthorized), "Failed to complete Google sign-in")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		respondBindError(c, fmt.Errorf("code is required"))
		return
	}
	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}

	var info *domain.GoogleUserInfo
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		info, err = h.googleOAuthService.ValidateGoogleIDToken(ctx, idToken)
	} else {
		logger.Debug("No ID token in Google response, falling back to userinfo")
		info, err = h.googleOAuthService.GetUserInfo(ctx, token)
	}
	if err != nil {
		respondError(c, err, "Failed to read Google identity")
		return
	}

	h.signIn(c, info, func(user *domain.User) {
		if h.frontendBaseURL == "" {
			issueToken(c, h.tokenService, user)
			return
		}
		access, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
		if err != nil {
			respondError(c, err, "Failed to generate token")
			return
		}
		fragment := url.Values{}
		fragment.Set("access_token", access)
		fragment.Set("expires_at", fmt.Sprint(expiresAt.Unix()))
		c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/callback#"+fragment.Encode())
	})
}

// signIn resolves the Google identity to a local user and hands it to done.
func (h *GoogleOAuthHandler) signIn(c *gin.Context, info *domain.GoogleUserInfo, done func(*domain.User)) {
	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), *info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed in with Google", slog.String("user_id", user.UserID))
	done(user)
}
