package middlewares

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/auth"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenSessions map[string]string

// brokenUsers resolves every session but fails the user lookup.
type brokenUsers struct{}

func (brokenUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("%w: connection refused", utils.ErrStore)
}
func (brokenUsers) FindByID(context.Context, string) (*models.User, error) {
	return nil, fmt.Errorf("%w: connection refused", utils.ErrStore)
}

func (s tokenSessions) Save(context.Context, string, string, time.Duration) error { return nil }
func (s tokenSessions) Lookup(_ context.Context, tok string) (string, bool, error) {
	id, ok := s[tok]
	return id, ok, nil
}
func (s tokenSessions) Delete(context.Context, string, string) error { return nil }
func (s tokenSessions) CachedUser(context.Context, string, *models.User) (bool, error) {
	return false, nil
}
func (s tokenSessions) CacheUser(context.Context, *models.User, time.Duration) error { return nil }

type oneUser struct{ user models.User }

func (o oneUser) FindByEmail(context.Context, string) (*models.User, error) { return &o.user, nil }
func (o oneUser) FindByID(_ context.Context, id string) (*models.User, error) {
	if id != o.user.ID {
		return nil, utils.ErrNotFound
	}
	return &o.user, nil
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := auth.NewService(
		oneUser{user: models.User{ID: "u1", Email: "admin@example.com", Role: models.UserRoleAdmin}},
		tokenSessions{"good": "u1"},
		logger,
	)

	r := gin.New()
	r.Use(SessionMiddleware(svc))
	whoami := func(c *gin.Context) {
		ident := access.IdentityFromContext(c.Request.Context())
		if ident == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		tok, _ := utils.GetTokenFromContext(c.Request.Context())
		c.String(http.StatusOK, ident.ID+"|"+tok)
	}
	r.GET("/whoami", whoami)
	r.GET("/admin", RequireAdmin(), whoami)
	r.GET("/member", RequireIdentity(), whoami)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware(t *testing.T) {
	r := newSessionRouter()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("token", "good")
	w = serve(r, req)
	assert.Equal(t, "u1|good", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "good"})
	w = serve(r, req)
	assert.Equal(t, "u1|good", w.Body.String())

	// A stale credential leaves the request anonymous; only the gates reject.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "expired"})
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/member", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "expired"})
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestSessionMiddleware_UserStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := auth.NewService(brokenUsers{}, tokenSessions{"good": "u1"}, logger)

	r := gin.New()
	r.Use(SessionMiddleware(svc))
	r.GET("/public", func(c *gin.Context) {
		if access.IdentityFromContext(c.Request.Context()) != nil {
			c.String(http.StatusOK, "identified")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/member", RequireIdentity(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("token", "good")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/member", nil)
	req.Header.Set("token", "good")
	w = serve(r, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestRequireAdminAndIdentity(t *testing.T) {
	r := newSessionRouter()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/member", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("token", "good")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadinessGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ready := false
	r := gin.New()
	r.Use(ReadinessGate(func() bool { return ready }))
	r.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, httptest.NewRequest(http.MethodGet, "/api/x", nil)).Code)
	ready = true
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/api/x", nil)).Code)
}

func TestCorrelationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorrelationMiddleware())
	r.GET("/", func(c *gin.Context) {
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		c.String(http.StatusOK, cid)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-correlation-id", "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("x-correlation-id"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Body.String(), 36)
}
