package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/infra/repository"
)

type MeHandler struct {
	repo *repository.BusinessGormRepository
}

func NewMeHandler(repo *repository.BusinessGormRepository) *MeHandler {
	return &MeHandler{repo: repo}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	user, err := h.repo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	business, err := h.repo.GetBusiness(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "business_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userJSON(user),
		"business": business,
	})
}
