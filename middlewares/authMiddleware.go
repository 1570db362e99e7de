package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
)

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if access.IdentityFromContext(c.Request.Context()) == nil {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects everyone but administrators with 401. Non-admins get
// the same answer as anonymous callers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.IdentityFromContext(c.Request.Context()).IsAdmin() {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}
