package access

import (
	"context"
	"testing"

	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	records map[int]models.Contract
	calls   int
}

func (f *fakeLookup) FindOwned(_ context.Context, id int, ownerID string) (*models.Contract, error) {
	f.calls++
	rec, ok := f.records[id]
	if !ok || rec.OwnerId != ownerID {
		return nil, utils.ErrNotFound
	}
	return &rec, nil
}

func (f *fakeLookup) FindByID(_ context.Context, id int) (*models.Contract, error) {
	f.calls++
	rec, ok := f.records[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &rec, nil
}

func newLookup() *fakeLookup {
	return &fakeLookup{records: map[int]models.Contract{
		1: {ID: 1, OwnerId: "alice"},
		2: {ID: 2, OwnerId: "bob"},
	}}
}

func TestAuthorize_NoIdentity(t *testing.T) {
	store := newLookup()
	g := NewGuard[models.Contract](store)

	_, err := g.Authorize(context.Background(), nil, "1", true)
	require.ErrorIs(t, err, utils.ErrUnauthorized)
	assert.Equal(t, 401, utils.HTTPStatus(err))
	assert.Zero(t, store.calls)
}

func TestAuthorize_BadIdNeverReachesStore(t *testing.T) {
	store := newLookup()
	g := NewGuard[models.Contract](store)
	alice := &Identity{ID: "alice", Role: models.UserRoleClient}

	for _, raw := range []string{"", "abc", "1.5", "-3", "0", "+5", "007", " 5", "99999999999999999999", "1; DROP TABLE contracts"} {
		_, err := g.Authorize(context.Background(), alice, raw, true)
		require.ErrorIs(t, err, utils.ErrInvalidArgument, raw)
		assert.Equal(t, 400, utils.HTTPStatus(err))
	}
	assert.Zero(t, store.calls)
}

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"1000", 1000, true},
		{"+5", 0, false},
		{"007", 0, false},
		{"0", 0, false},
		{"5 ", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseResourceID(tc.raw)
		if tc.ok != (err == nil) || got != tc.want {
			t.Fatalf("ParseResourceID(%q) = %d, %v", tc.raw, got, err)
		}
	}
}

func TestAuthorize_ForeignAndMissingAreIndistinguishable(t *testing.T) {
	g := NewGuard[models.Contract](newLookup())
	alice := &Identity{ID: "alice", Role: models.UserRoleClient}

	_, foreignErr := g.Authorize(context.Background(), alice, "2", true)
	_, missingErr := g.Authorize(context.Background(), alice, "99", true)

	require.ErrorIs(t, foreignErr, utils.ErrNotFound)
	require.ErrorIs(t, missingErr, utils.ErrNotFound)
	assert.Equal(t, utils.HTTPStatus(missingErr), utils.HTTPStatus(foreignErr))
	assert.Equal(t, utils.PublicMessage(missingErr), utils.PublicMessage(foreignErr))
}

func TestAuthorize_Owner(t *testing.T) {
	g := NewGuard[models.Contract](newLookup())

	rec, err := g.Authorize(context.Background(), &Identity{ID: "alice"}, "1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
}

func TestAuthorize_WithoutOwnership(t *testing.T) {
	g := NewGuard[models.Contract](newLookup())
	admin := &Identity{ID: "root", Role: models.UserRoleAdmin}

	rec, err := g.Authorize(context.Background(), admin, "2", false)
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.OwnerId)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), &Identity{ID: "u1", Email: "a@b.c", Role: models.UserRoleAdmin})

	got := IdentityFromContext(ctx)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, "a@b.c", got.Email)
	assert.Nil(t, IdentityFromContext(context.Background()))
}
