package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizcare-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier map[string]*jwt.Claims

func (f fakeVerifier) VerifyAccessToken(token string) (*jwt.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f fakeBlacklist) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func claimsFor(jti, subject string, roles ...string) *jwt.Claims {
	return &jwt.Claims{
		Roles:            roles,
		RegisteredClaims: gojwt.RegisteredClaims{ID: jti, Subject: subject},
	}
}

func authRouter(bl TokenBlacklist) *gin.Engine {
	verifier := fakeVerifier{
		"manager-token": claimsFor("j1", "mgr-1", jwt.RoleManager),
		"admin-token":   claimsFor("j2", "adm-1", jwt.RoleAdmin),
		"staff-token":   claimsFor("j3", "stf-1", "staff"),
		"revoked-token": claimsFor("j4", "mgr-2", jwt.RoleManager),
	}
	m := NewAuthMiddleware(verifier, bl, zap.NewNop())

	r := gin.New()
	r.GET("/manager", append(m.ManagerOnly(), func(c *gin.Context) {
		subject, _ := GetSubject(c)
		c.String(http.StatusOK, subject)
	})...)
	r.GET("/admin", append(m.AdminOnly(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})...)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := authRouter(fakeBlacklist{revoked: map[string]bool{"j4": true}})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "/manager", "").Code)
	})
	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "/manager", "forged").Code)
	})
	t.Run("revoked token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "/manager", "revoked-token").Code)
	})
	t.Run("manager allowed", func(t *testing.T) {
		w := get(r, "/manager", "manager-token")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "mgr-1", w.Body.String())
	})
	t.Run("admin counts as manager", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(r, "/manager", "admin-token").Code)
	})
	t.Run("other roles forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(r, "/manager", "staff-token").Code)
	})
	t.Run("admin only", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(r, "/admin", "manager-token").Code)
		assert.Equal(t, http.StatusOK, get(r, "/admin", "admin-token").Code)
	})
	t.Run("token from query", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(r, "/manager?token=manager-token", "").Code)
	})
}

func TestAuth_BlacklistFailure(t *testing.T) {
	r := authRouter(fakeBlacklist{err: errors.New("redis down")})
	assert.Equal(t, http.StatusInternalServerError, get(r, "/manager", "manager-token").Code)
}

func TestAuth_NoBlacklist(t *testing.T) {
	r := authRouter(nil)
	assert.Equal(t, http.StatusOK, get(r, "/manager", "revoked-token").Code)
}

func TestHelpers_AdminFlag(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	assert.False(t, IsAdmin(c))

	c.Set(ctxRoles, []string{jwt.RoleSuperAdmin})
	assert.True(t, IsAdmin(c))
	_, ok := GetClaims(c)
	assert.False(t, ok)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := get(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), LoggingMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := get(r, "/", "")
	generated := w.Header().Get("X-Request-ID")
	require.Len(t, generated, 26)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-123", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig([]string{"https://admin.bizcare.kr"})))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	send := func(method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodGet, "https://admin.bizcare.kr")
	assert.Equal(t, "https://admin.bizcare.kr", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = send(http.MethodGet, "https://evil.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = send(http.MethodOptions, "https://admin.bizcare.kr")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

type fakeLimiter struct {
	allowed   bool
	remaining int64
	err       error
	scopes    []string
}

func (f *fakeLimiter) Allow(ctx context.Context, scope, clientID string) (bool, int64, error) {
	f.scopes = append(f.scopes, scope)
	return f.allowed, f.remaining, f.err
}

func TestRateLimit(t *testing.T) {
	limited := func(l *fakeLimiter) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/submit", RateLimit(l, "submit", 30, zap.NewNop()), func(c *gin.Context) {
			c.String(http.StatusCreated, "ok")
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		return w
	}

	l := &fakeLimiter{allowed: true, remaining: 29}
	w := limited(l)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "30", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"submit"}, l.scopes)

	w = limited(&fakeLimiter{allowed: false})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = limited(&fakeLimiter{err: errors.New("redis down")})
	assert.Equal(t, http.StatusCreated, w.Code)
}
