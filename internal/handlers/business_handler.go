package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/timezone"
)

type BusinessHandler struct {
	repo *repository.BusinessGormRepository
}

func NewBusinessHandler(repo *repository.BusinessGormRepository) *BusinessHandler {
	return &BusinessHandler{repo: repo}
}

type UpdateBusinessRequest struct {
	Name     *string `json:"name"`
	Document *string `json:"document"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
	Locale   *string `json:"locale"`
}

func (h *BusinessHandler) Get(c *gin.Context) {
	b, err := h.repo.GetBusiness(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_business", "Erro ao buscar dados da empresa.")
		return
	}
	if b == nil {
		httperr.NotFound(c, "business_not_found", "Empresa não cadastrada.")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	b, err := h.repo.GetBusiness(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_business", "Erro ao buscar dados da empresa.")
		return
	}
	if b == nil {
		httperr.NotFound(c, "business_not_found", "Empresa não cadastrada.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome da empresa é obrigatório.")
			return
		}
		b.Name = name
	}
	if req.Document != nil {
		b.Document = format.Digits(*req.Document)
	}
	if req.Phone != nil {
		b.Phone = format.FormatPhone(*req.Phone)
	}
	if req.Email != nil {
		b.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Address != nil {
		b.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		b.Timezone = *req.Timezone
	}
	if req.Locale != nil {
		b.Locale = string(format.ParseLocale(*req.Locale))
	}

	if err := h.repo.SaveBusiness(c.Request.Context(), b); err != nil {
		httperr.Internal(c, "failed_to_update_business", "Erro ao salvar as configurações da empresa.")
		return
	}

	c.JSON(http.StatusOK, b)
}
