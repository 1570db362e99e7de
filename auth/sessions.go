package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/models"
)

var errSessionStoreDown = errors.New("session store unavailable")

// Sessions keeps session tokens and cached users.
//
//	Token:<token>   -> user id, expires with the session
//	Tokens:<userId> -> set of live tokens
//	User:<userId>   -> cached user row
type Sessions interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (userID string, ok bool, err error)
	Delete(ctx context.Context, token, userID string) error
	CachedUser(ctx context.Context, userID string, dest *models.User) (bool, error)
	CacheUser(ctx context.Context, user *models.User, ttl time.Duration) error
}

// RedisSessions is Sessions on the shared redis client.
type RedisSessions struct{}

func (RedisSessions) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if config.GetRedisDB() == nil {
		return errSessionStoreDown
	}
	if err := config.AddRedisSet(ctx, "Tokens:"+userID, token); err != nil {
		return err
	}
	return config.SetRedisValue(ctx, "Token:"+token, userID, ttl)
}

func (RedisSessions) Lookup(ctx context.Context, token string) (string, bool, error) {
	if config.GetRedisDB() == nil {
		return "", false, errSessionStoreDown
	}
	return config.GetRedisValue(ctx, "Token:"+token)
}

func (RedisSessions) Delete(ctx context.Context, token, userID string) error {
	if err := config.RemoveRedisKey(ctx, "Token:"+token); err != nil {
		return err
	}
	if userID == "" {
		return nil
	}
	return config.RemoveRedisSetMember(ctx, "Tokens:"+userID, token)
}

func (RedisSessions) CachedUser(ctx context.Context, userID string, dest *models.User) (bool, error) {
	return config.GetRedisObject(ctx, "User:"+userID, dest)
}

// CacheUser stores the user for identity lookups. The password hash is not
// serialised, so cached users cannot be used for login.
func (RedisSessions) CacheUser(ctx context.Context, user *models.User, ttl time.Duration) error {
	return config.SetRedisObject(ctx, "User:"+user.ID, user, ttl)
}
