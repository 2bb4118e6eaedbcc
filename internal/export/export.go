// Package export gera os documentos de ordem de serviço: .docx para
// impressão e planilha .xlsx com a listagem.
package export

import (
	"time"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

type Options struct {
	Business models.Business
	Locale   format.Locale
	Location *time.Location
}

func (o Options) date(iso string) string {
	if iso == "" {
		return ""
	}
	s, err := format.FormatDisplayDate(iso, o.Locale)
	if err != nil {
		return iso
	}
	return s
}
