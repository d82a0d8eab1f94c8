package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "ts_session"
	sessionKey    = "sessionID"

	// ~180 days; session state is a cache, not an account.
	sessionMaxAge = 180 * 24 * 3600
)

// Session ensures every request carries a session id, issuing a new
// cookie when none is present. The id keys all per-session state
// records.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the request's session id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
