// Package statuscolor maps status labels to the colors used by list and card views.
package statuscolor

import "strings"

type Colors struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

var (
	green  = Colors{Background: "#DCFCE7", Text: "#166534", Border: "#86EFAC"}
	blue   = Colors{Background: "#DBEAFE", Text: "#1E40AF", Border: "#93C5FD"}
	yellow = Colors{Background: "#FEF9C3", Text: "#854D0E", Border: "#FDE047"}
	red    = Colors{Background: "#FEE2E2", Text: "#991B1B", Border: "#FCA5A5"}
	gray   = Colors{Background: "#F3F4F6", Text: "#374151", Border: "#D1D5DB"}
)

// Neutral é usado para rótulos desconhecidos.
var Neutral = gray

var palette = map[string]Colors{
	"ativo":        green,
	"inativo":      gray,
	"em andamento": blue,
	"concluído":    green,
	"concluída":    green,
	"cancelado":    red,
	"cancelada":    red,
	"pendente":     yellow,
}

func Resolve(label string) Colors {
	if c, ok := palette[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return Neutral
}

// Palette devolve o mapa completo, indexado pelo rótulo normalizado.
func Palette() map[string]Colors {
	out := make(map[string]Colors, len(palette))
	for k, v := range palette {
		out[k] = v
	}
	return out
}
