package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/httpresp"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// Catálogo de serviços: base das sugestões no formulário de agendamento.
type CatalogHandler struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCatalogHandler(ws *workspace.Workspace, audit *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{ws: ws, audit: audit}
}

// --------- Requests ---------

type CreateCatalogServiceRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Category     string          `json:"category"`
}

type UpdateCatalogServiceRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	DefaultPrice *decimal.Decimal `json:"default_price,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

func validCatalogService(s models.CatalogService) error {
	if strings.TrimSpace(s.Name) == "" {
		return httperr.NewValidationError("name", "Nome é obrigatório.")
	}
	if s.DefaultPrice.IsNegative() {
		return httperr.NewValidationError("default_price", "Preço não pode ser negativo.")
	}
	return nil
}

// --------- Handlers ---------

func (h *CatalogHandler) List(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.TrimSpace(c.Query("query"))

	out := h.ws.Catalog.Filter(func(s models.CatalogService) bool {
		if category != "" && !strings.EqualFold(s.Category, category) {
			return false
		}
		if activeStr == "true" && !s.Active {
			return false
		}
		if activeStr == "false" && s.Active {
			return false
		}
		if query != "" && !suggest.Matches(s.Name, query) && !suggest.Matches(s.Description, query) {
			return false
		}
		return true
	})

	httpresp.List(c, out)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req CreateCatalogServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	rec := models.CatalogService{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		DefaultPrice: req.DefaultPrice.Round(2),
		Category:     strings.TrimSpace(req.Category),
		Active:       true,
	}
	if err := validCatalogService(rec); err != nil {
		httperr.FromError(c, err)
		return
	}

	created, err := h.ws.Catalog.Create(c.Request.Context(), rec)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "catalog_service_created", "catalog_service", created.ID, gin.H{"name": created.Name})

	httpresp.Created(c, created)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateCatalogServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	updated, err := h.ws.Catalog.Update(c.Request.Context(), id, func(s *models.CatalogService) error {
		if req.Name != nil {
			s.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			s.Description = strings.TrimSpace(*req.Description)
		}
		if req.DefaultPrice != nil {
			s.DefaultPrice = req.DefaultPrice.Round(2)
		}
		if req.Category != nil {
			s.Category = strings.TrimSpace(*req.Category)
		}
		if req.Active != nil {
			s.Active = *req.Active
		}
		return validCatalogService(*s)
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "catalog_service_updated", "catalog_service", id, nil)

	httpresp.OK(c, updated)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := h.ws.Catalog.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "catalog_service_deleted", "catalog_service", id, nil)

	httpresp.NoContent(c)
}
