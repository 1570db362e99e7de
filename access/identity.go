package access

import (
	"context"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
)

// Identity is the authenticated caller.
type Identity struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.UserRoleAdmin
}

// IdentityFromContext rebuilds the identity the session middleware stored on
// ctx. It returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := utils.GetUserIdFromContext(ctx)
	if !ok || id == "" {
		return nil
	}
	email, _ := utils.GetEmailFromContext(ctx)
	role, _ := utils.GetRoleFromContext(ctx)
	return &Identity{ID: id, Email: email, Role: models.UserRole(role)}
}

// WithIdentity is the inverse of IdentityFromContext.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	if ident == nil {
		return ctx
	}
	ctx = utils.SetUserIdInContext(ctx, ident.ID)
	ctx = utils.SetEmailInContext(ctx, ident.Email)
	return utils.SetRoleInContext(ctx, string(ident.Role))
}
