package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
)

// CustomErrorLogger logs only requests that recorded errors.
func CustomErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"correlation_id": cid,
				"method":         c.Request.Method,
				"path":           c.FullPath(),
				"status":         c.Writer.Status(),
			}).Error(c.Errors.String())
		}
	}
}
