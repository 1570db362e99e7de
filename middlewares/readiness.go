package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const healthPath = "/healthz"

// ReadinessGate answers 503 until ready reports true. The health probe is
// always allowed through.
func ReadinessGate(ready func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthPath {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if !ready() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service starting"})
			return
		}
		c.Next()
	}
}
