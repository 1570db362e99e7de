package access

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mmdatafocus/portal_backend/utils"
)

// Lookup is the slice of models.OwnedRepository the guard needs.
type Lookup[E any] interface {
	FindOwned(ctx context.Context, id int, ownerID string) (*E, error)
	FindByID(ctx context.Context, id int) (*E, error)
}

// Guard admits a caller to one owned record. It only reads.
type Guard[E any] struct {
	store Lookup[E]
}

func NewGuard[E any](store Lookup[E]) *Guard[E] {
	return &Guard[E]{store: store}
}

// ParseResourceID accepts positive base-10 integers in canonical form only:
// digits, no sign, no leading zeros. "+5" and "007" are rejected.
func ParseResourceID(raw string) (int, error) {
	if !canonicalDigits(raw) {
		return 0, fmt.Errorf("%w: resource id %q is not a positive integer", utils.ErrInvalidArgument, raw)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: resource id %q is not a positive integer", utils.ErrInvalidArgument, raw)
	}
	return id, nil
}

func canonicalDigits(raw string) bool {
	if raw == "" || raw[0] == '0' {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// Authorize checks, in order: identity present, id well formed, record
// visible. With requiredOwnership the record is fetched by id and owner in a
// single predicate, so a record that belongs to someone else is reported
// exactly like a missing one.
func (g *Guard[E]) Authorize(ctx context.Context, ident *Identity, rawID string, requiredOwnership bool) (*E, error) {
	if ident == nil || ident.ID == "" {
		return nil, utils.ErrUnauthorized
	}
	id, err := ParseResourceID(rawID)
	if err != nil {
		return nil, err
	}
	if requiredOwnership {
		return g.store.FindOwned(ctx, id, ident.ID)
	}
	return g.store.FindByID(ctx, id)
}
