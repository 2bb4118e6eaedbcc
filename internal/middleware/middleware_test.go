package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/config"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/me", AuthMiddleware(cfg), func(c *gin.Context) {
		actor := audit.ActorFrom(c.Request.Context())
		var id uint
		if actor != nil {
			id = *actor
		}
		c.JSON(http.StatusOK, gin.H{
			"user":  c.MustGet(ContextUserID).(uint),
			"role":  c.MustGet(ContextUserRole).(string),
			"actor": id,
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "segredo"}
	r := newRouter(cfg)

	valid := signed(t, "segredo", jwt.MapClaims{
		"sub":  7,
		"role": "owner",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	t.Run("bearer válido", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":7,"role":"owner","actor":7}`, w.Body.String())
	})

	t.Run("token na query", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token="+valid, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sem header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing_authorization_header")
	})

	t.Run("header sem Bearer", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", valid)
		r.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), "invalid_authorization_header")
	})

	t.Run("segredo errado", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "outro", jwt.MapClaims{"sub": 7}))
		r.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("expirado", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "segredo", jwt.MapClaims{
			"sub": 7,
			"exp": time.Now().Add(-time.Hour).Unix(),
		}))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("sem sub", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "segredo", jwt.MapClaims{"role": "owner"}))
		r.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), "invalid_token_payload")
	})
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(&config.Config{JWTSecret: "x"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
