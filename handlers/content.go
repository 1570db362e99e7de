package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
)

type ContentResolver interface {
	Resolve(ctx context.Context, pageKey string) (map[string]string, error)
}

// GetPageContent serves both GET /api/content?page= and
// GET /api/content/:pageKey.
func GetPageContent(resolver ContentResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageKey := c.Param("pageKey")
		if pageKey == "" {
			pageKey = c.Query("page")
		}
		content, err := resolver.Resolve(c.Request.Context(), pageKey)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, content)
	}
}
