package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the caller's user id.
const UserIDKey = "user_id"

// WithUser trusts the X-User-Id header set by the identity layer in front
// of this service. Authentication itself happens upstream; this service
// only consumes the resolved id.
func WithUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid != "" {
			c.Set(UserIDKey, uid)
		}

		c.Next()
	}
}

// UserID returns the caller's user id from the gin context, or "".
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
