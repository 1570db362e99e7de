package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/leads"
	"github.com/mmdatafocus/portal_backend/utils"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// respondError writes the stable public message for err. Server-side
// failures are also recorded on the gin context for the error logger.
func respondError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := gin.H{"error": utils.PublicMessage(err)}
	var verr *leads.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
