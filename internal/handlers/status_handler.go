package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/httpresp"
	"github.com/BruksfildServices01/service-desk/internal/statuscolor"
)

// StatusColors devolve a paleta inteira ou, com ?label=, só a cor do rótulo.
func StatusColors(c *gin.Context) {
	if label := c.Query("label"); label != "" {
		httpresp.OK(c, gin.H{
			"label":  label,
			"colors": statuscolor.Resolve(label),
		})
		return
	}

	httpresp.OK(c, gin.H{
		"palette": statuscolor.Palette(),
		"neutral": statuscolor.Neutral,
	})
}
