package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/documents"
	"github.com/mmdatafocus/portal_backend/models"
)

type Authorizer[E any] interface {
	Authorize(ctx context.Context, ident *access.Identity, rawID string, requiredOwnership bool) (*E, error)
}

type Generator interface {
	Generate(ctx context.Context, rec models.OwnedRecord) (*documents.Result, error)
}

type OwnedLister[E any] interface {
	ListOwned(ctx context.Context, ownerID string) ([]E, error)
}

// GenerateDocument renders and stores the PDF for /:id. Clients pass
// requiredOwnership=true; the admin routes pass false.
func GenerateDocument[E models.OwnedRecord](guard Authorizer[E], gen Generator, requiredOwnership bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rec, err := guard.Authorize(ctx, access.IdentityFromContext(ctx), c.Param("id"), requiredOwnership)
		if err != nil {
			respondError(c, err)
			return
		}
		res, err := gen.Generate(ctx, *rec)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, res)
	}
}

func GetOwned[E any](guard Authorizer[E]) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		rec, err := guard.Authorize(ctx, access.IdentityFromContext(ctx), c.Param("id"), true)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, rec)
	}
}

func ListOwned[E any](lister OwnedLister[E]) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := access.IdentityFromContext(c.Request.Context())
		if ident == nil {
			respondError(c, errUnauthorized)
			return
		}
		recs, err := lister.ListOwned(c.Request.Context(), ident.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if recs == nil {
			recs = []E{}
		}
		respondData(c, recs)
	}
}
