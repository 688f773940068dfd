package middleware

import "github.com/gin-gonic/gin"

// userIDKey carries the authenticated caller's ID. The typed key keeps it
// from colliding with other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID set by the auth
// middleware. The gin context is checked first, then the underlying request
// context, since services downstream only see the latter.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		id, ok := v.(string)
		return id, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		id, ok := v.(string)
		return id, ok
	}
	return "", false
}
