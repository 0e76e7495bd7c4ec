package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError writes err as JSON with the status its kind maps to.
// Server-side failures are logged and their details hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		message = fallback
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == status {
			message = appErr.Message
		}
	} else {
		logger.Warn(fallback, slog.String("reason", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, ErrorResponse{Error: message, Code: apperrors.Kind(err)})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error(), Code: apperrors.Kind(apperrors.ErrValidation)})
}
