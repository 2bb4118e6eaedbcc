package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/config"
	"github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/timezone"
	"github.com/BruksfildServices01/service-desk/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	repo   *repository.BusinessGormRepository
	config *config.Config

	// trocado nos testes para não depender de DNS
	emailDomainValid func(string) bool
}

func NewAuthHandler(repo *repository.BusinessGormRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		repo:             repo,
		config:           cfg,
		emailDomainValid: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessPhone   string `json:"business_phone"`
	BusinessAddress string `json:"business_address"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// o formato do e-mail é checado depois do trim; a tag `email` do binding
// recusaria "Dona@Oficina.com " antes da normalização.
var emailRules = validator.New()

func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := emailRules.Var(email, "required,email"); err != nil {
		return "", false
	}
	return email, true
}

func invalidEmail(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_email",
		"message": "Informe um e-mail válido.",
	})
}

// --------- Handlers ---------

// Register cria a conta do responsável. A instalação tem um único dono.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	count, err := h.repo.CountUsers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "owner_already_exists"})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		invalidEmail(c)
		return
	}

	if !h.emailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	business := models.Business{
		Name:     strings.TrimSpace(req.BusinessName),
		Phone:    req.BusinessPhone,
		Address:  req.BusinessAddress,
		Timezone: h.businessTimezone(),
		Locale:   h.config.BusinessLocale,
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.repo.CreateOwner(ctx, &user, &business); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     userJSON(&user),
		"business": business,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		invalidEmail(c)
		return
	}

	user, err := h.repo.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userJSON(user),
		"token": token,
	})
}

func (h *AuthHandler) businessTimezone() string {
	if timezone.IsValid(h.config.BusinessTimezone) {
		return h.config.BusinessTimezone
	}
	return timezone.DefaultTimezone
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
