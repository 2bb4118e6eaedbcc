package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/middleware"
)

const (
	defaultSuggestLimit = 8
	maxSuggestLimit     = 50
)

// paramID lê um id numérico da rota e responde 400 quando inválido.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

func queryLimit(c *gin.Context, def, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// queryDate aceita ISO ou a data no formato de exibição do idioma.
func queryDate(c *gin.Context, name string, l format.Locale) string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return ""
	}
	if t, err := format.ParseISODate(raw, nil); err == nil {
		return format.ToISODate(t)
	}
	if iso, err := format.ParseDisplayDate(raw, l); err == nil {
		return iso
	}
	return ""
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    "Dados inválidos na requisição.",
			"details":    err.Error(),
		})
		return false
	}
	return true
}

func currentUserID(c *gin.Context) uint {
	id, _ := c.Get(middleware.ContextUserID)
	uid, _ := id.(uint)
	return uid
}
