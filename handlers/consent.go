package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/consent"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
)

const maxConsentBody = 64 << 10

type ConsentRecorder interface {
	Record(ctx context.Context, v consent.Visitor, sub consent.Submission) (*models.ConsentRecord, error)
}

// RecordConsent accepts any body; unreadable input records the defaults.
func RecordConsent(recorder ConsentRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxConsentBody))
		if err != nil {
			body = nil
		}
		primary, _ := c.Cookie(utils.SessionCookieName)
		secure, _ := c.Cookie(utils.SecureSessionCookieName)

		ctx := c.Request.Context()
		rec, err := recorder.Record(ctx, consent.Visitor{
			Identity:      access.IdentityFromContext(ctx),
			PrimaryCookie: primary,
			SecureCookie:  secure,
			IpAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}, consent.ParseSubmission(body))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, gin.H{"consent_id": rec.ConsentId})
	}
}
