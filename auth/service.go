package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", utils.ErrUnauthorized)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type LoginInfo struct {
	Token       string           `json:"token"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        *access.Identity `json:"user"`
}

// Credentials are the raw request inputs, in lookup order.
type Credentials struct {
	HeaderToken   string
	PrimaryCookie string
	SecureCookie  string
	Authorization string
}

type Service struct {
	users    UserStore
	sessions Sessions
	logger   *logrus.Logger
	now      func() time.Time
}

func NewService(users UserStore, sessions Sessions, logger *logrus.Logger) *Service {
	return &Service{users: users, sessions: sessions, logger: logger, now: time.Now}
}

func identityOf(u *models.User) *access.Identity {
	return &access.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginInfo, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, fmt.Errorf("%w: user is disabled", utils.ErrUnauthorized)
	}

	ttl := utils.TokenLifespan()
	token := uuid.New().String()
	if err := s.sessions.Save(ctx, token, user.ID, ttl); err != nil {
		config.LogError(s.logger, "auth", "Login", "save session", map[string]interface{}{"user_id": user.ID}, err)
		return nil, err
	}
	if err := s.sessions.CacheUser(ctx, user, ttl); err != nil {
		config.LogError(s.logger, "auth", "Login", "cache user", map[string]interface{}{"user_id": user.ID}, err)
	}
	accessToken, err := utils.JwtGenerate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginInfo{
		Token:       token,
		AccessToken: accessToken,
		ExpiresAt:   s.now().Add(ttl),
		User:        identityOf(user),
	}, nil
}

// Logout destroys one session.
func (s *Service) Logout(ctx context.Context, token, userID string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", utils.ErrInvalidArgument)
	}
	return s.sessions.Delete(ctx, token, userID)
}

// Authenticate resolves the first credential present. It returns a nil
// identity when the request carries none, and ErrUnauthorized when the
// credential it found is not valid. sessionToken is empty for bearer auth.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (ident *access.Identity, sessionToken string, err error) {
	for _, tok := range []string{c.HeaderToken, c.PrimaryCookie, c.SecureCookie} {
		if tok = strings.TrimSpace(tok); tok != "" {
			ident, err = s.resolveSession(ctx, tok)
			return ident, tok, err
		}
	}
	if bearer, ok := strings.CutPrefix(strings.TrimSpace(c.Authorization), "Bearer "); ok {
		claims, err := utils.JwtValidate(strings.TrimSpace(bearer))
		if err != nil {
			return nil, "", utils.ErrUnauthorized
		}
		return &access.Identity{ID: claims.UserID, Email: claims.Email, Role: models.UserRole(claims.Role)}, "", nil
	}
	return nil, "", nil
}

func (s *Service) resolveSession(ctx context.Context, token string) (*access.Identity, error) {
	userID, ok, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		config.LogError(s.logger, "auth", "resolveSession", "lookup session", nil, err)
		return nil, utils.ErrUnauthorized
	}
	if !ok || userID == "" {
		return nil, utils.ErrUnauthorized
	}

	var user models.User
	cached, err := s.sessions.CachedUser(ctx, userID, &user)
	if err != nil || !cached {
		found, ferr := s.users.FindByID(ctx, userID)
		if ferr != nil {
			if errors.Is(ferr, utils.ErrNotFound) {
				return nil, utils.ErrUnauthorized
			}
			config.LogError(s.logger, "auth", "resolveSession", "find user", map[string]interface{}{"user_id": userID}, ferr)
			return nil, ferr
		}
		user = *found
		if cerr := s.sessions.CacheUser(ctx, &user, utils.TokenLifespan()); cerr != nil {
			config.LogError(s.logger, "auth", "resolveSession", "cache user", map[string]interface{}{"user_id": userID}, cerr)
		}
	}
	if !user.Active() {
		return nil, utils.ErrUnauthorized
	}
	return identityOf(&user), nil
}
