package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are never reported to PostHog.
var untrackedPrefixes = []string{"/health", "/swagger"}

// PosthogMiddleware reports every successful authenticated request as an event
// named after its route, e.g. "/api/v1/journal/:entry_id/submit" becomes
// "api_v1_journal_entry_id_submit".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := EventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName derives an analytics event name from a gin route pattern.
func EventName(fullPath string) string {
	name := strings.Trim(fullPath, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, "/", "_")
}

func untracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
