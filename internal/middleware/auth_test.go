package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehandout_backend/internal/auth"
	"ehandout_backend/internal/services"
)

type memLedger struct {
	revoked map[string]time.Time
}

func (l *memLedger) Upsert(_ context.Context, token string, expiresAt time.Time) error {
	l.revoked[token] = expiresAt
	return nil
}

func (l *memLedger) Exists(_ context.Context, token string) (bool, error) {
	_, ok := l.revoked[token]
	return ok, nil
}

func (l *memLedger) DeleteExpired(context.Context) (int64, error) { return 0, nil }

func newTestRouter(tokens services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accountId": GetAccountID(c)})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	ledger := &memLedger{revoked: make(map[string]time.Time)}
	tokens := services.NewTokenService(auth.NewTokenManager("test-secret", time.Hour), ledger, nil)
	r := newTestRouter(tokens)

	token, err := tokens.Sign("acc-1", "a@b.com")
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doGet(r, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "acc-1")
	})

	t.Run("tampered token", func(t *testing.T) {
		w := doGet(r, "Bearer "+token+"x")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("logged-out token", func(t *testing.T) {
		require.NoError(t, tokens.Revoke(context.Background(), token))
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "logged out")
	})
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	ledger := &memLedger{revoked: make(map[string]time.Time)}
	expired := services.NewTokenService(auth.NewTokenManager("test-secret", -time.Hour), ledger, nil)
	r := newTestRouter(expired)

	token, err := expired.Sign("acc-1", "a@b.com")
	require.NoError(t, err)

	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
