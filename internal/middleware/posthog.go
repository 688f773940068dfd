package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trustbooks/trust_ledger_app/internal/utils"
)

// untrackedPaths are served without emitting analytics events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// PosthogMiddleware emits a usage event per successful authenticated request.
// Failed requests and unauthenticated traffic are not tracked.
func PosthogMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
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

		// "/api/v1/check-queue" becomes "api_v1_check-queue".
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}

		client.Enqueue(userID, eventName, props)
	}
}
