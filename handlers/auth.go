package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/auth"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/utils"
)

var errUnauthorized = utils.ErrUnauthorized

type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.LoginInfo, error)
	Logout(ctx context.Context, token, userID string) error
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func sessionCookieName() string {
	if config.BoolFromEnv("SESSION_COOKIE_SECURE") {
		return utils.SecureSessionCookieName
	}
	return utils.SessionCookieName
}

func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName(), value, maxAge, "/", config.GetEnv("COOKIE_DOMAIN", ""), config.BoolFromEnv("SESSION_COOKIE_SECURE"), true)
}

func Login(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", utils.ErrInvalidArgument, err))
			return
		}
		info, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		setSessionCookie(c, info.Token, int(utils.TokenLifespan().Seconds()))
		respondData(c, info)
	}
}

func Logout(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ident := access.IdentityFromContext(ctx)
		if ident == nil {
			respondError(c, errUnauthorized)
			return
		}
		if token, ok := utils.GetTokenFromContext(ctx); ok && token != "" {
			if err := svc.Logout(ctx, token, ident.ID); err != nil {
				respondError(c, err)
				return
			}
		}
		setSessionCookie(c, "", -1)
		respondData(c, gin.H{"logged_out": true})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := access.IdentityFromContext(c.Request.Context())
		if ident == nil {
			respondError(c, errUnauthorized)
			return
		}
		respondData(c, ident)
	}
}
