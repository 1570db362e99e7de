package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/auth"
	"github.com/mmdatafocus/portal_backend/utils"
)

// credentialErrorKey holds the reason a presented credential was not
// accepted, for RequireIdentity/RequireAdmin to report.
const credentialErrorKey = "credentialError"

// SessionMiddleware attaches the caller's identity to the request context.
// It never rejects: a missing, stale or unresolvable credential leaves the
// request anonymous, so public routes keep working for visitors with an
// expired cookie or while redis is down. Protected routes reject through
// RequireIdentity and RequireAdmin.
func SessionMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		primary, _ := c.Cookie(utils.SessionCookieName)
		secure, _ := c.Cookie(utils.SecureSessionCookieName)

		ident, token, err := svc.Authenticate(c.Request.Context(), auth.Credentials{
			HeaderToken:   c.Request.Header.Get("token"),
			PrimaryCookie: primary,
			SecureCookie:  secure,
			Authorization: c.Request.Header.Get("Authorization"),
		})
		if err != nil {
			c.Set(credentialErrorKey, err)
			c.Next()
			return
		}
		if ident == nil {
			c.Next()
			return
		}

		ctx := access.WithIdentity(c.Request.Context(), ident)
		if token != "" {
			ctx = utils.SetTokenInContext(ctx, token)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// abortUnauthorized answers 401, or 500 when the credential could not be
// checked because a store failed.
func abortUnauthorized(c *gin.Context) {
	err := utils.ErrUnauthorized
	if v, ok := c.Get(credentialErrorKey); ok {
		if cerr, ok := v.(error); ok && utils.HTTPStatus(cerr) >= 500 {
			err = cerr
		}
	}
	if utils.HTTPStatus(err) >= 500 {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(utils.HTTPStatus(err), gin.H{"error": utils.PublicMessage(err)})
}
