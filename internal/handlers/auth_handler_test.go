package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/config"
	"github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/middleware"
	"github.com/BruksfildServices01/service-desk/internal/workspace/workspacetest"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fx := workspacetest.New(t)
	repo := repository.NewBusinessGormRepository(fx.DB)
	cfg := &config.Config{JWTSecret: "segredo", BusinessTimezone: "America/Sao_Paulo", BusinessLocale: "pt-BR"}

	auth := NewAuthHandler(repo, cfg)
	auth.emailDomainValid = func(string) bool { return true }

	r := gin.New()
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.GET("/me", middleware.AuthMiddleware(cfg), NewMeHandler(repo).GetMe)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func TestRegisterLoginAndMe(t *testing.T) {
	r := setupAuthRouter(t)

	register := gin.H{
		"business_name": "Oficina Central",
		"name":          "Dona",
		"email":         "Dona@Oficina.com ",
		"password":      "segredo123",
	}

	w := postJSON(r, "/auth/register", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "dona@oficina.com", reg.User.Email)
	assert.Equal(t, "owner", reg.User.Role)

	// uma só conta por instalação
	w = postJSON(r, "/auth/register", register)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "owner_already_exists")

	w = postJSON(r, "/auth/login", gin.H{"email": "dona@oficina.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", gin.H{"email": " DONA@oficina.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Oficina Central")
	assert.Contains(t, w.Body.String(), "America/Sao_Paulo")
}

func TestRegisterRejectsUnknownEmailDomain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fx := workspacetest.New(t)

	auth := NewAuthHandler(repository.NewBusinessGormRepository(fx.DB), &config.Config{JWTSecret: "x"})
	auth.emailDomainValid = func(string) bool { return false }

	r := gin.New()
	r.POST("/auth/register", auth.Register)

	w := postJSON(r, "/auth/register", gin.H{
		"business_name": "Oficina",
		"name":          "Dona",
		"email":         "dona@nao-existe.invalid",
		"password":      "segredo123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_email_domain")
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	r := setupAuthRouter(t)

	for _, email := range []string{"dona", "  ", "dona@"} {
		w := postJSON(r, "/auth/register", gin.H{
			"business_name": "Oficina",
			"name":          "Dona",
			"email":         email,
			"password":      "segredo123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, email)
		assert.Contains(t, w.Body.String(), "invalid_email", email)
	}

	w := postJSON(r, "/auth/login", gin.H{"email": "sem-arroba", "password": "segredo123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_email")
}
