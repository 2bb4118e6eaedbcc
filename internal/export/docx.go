package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ordem_servico.docx traz os marcadores {chave} preenchidos abaixo.
//
//go:embed templates/ordem_servico.docx
var serviceOrderTemplate []byte

// ServiceOrderDocx monta o documento da OS; ap pode ser nil quando o
// agendamento já foi removido.
func ServiceOrderDocx(o models.ServiceOrder, ap *models.Appointment, opts Options) ([]byte, error) {
	doc, err := docx.OpenBytes(serviceOrderTemplate)
	if err != nil {
		return nil, fmt.Errorf("open docx template: %w", err)
	}
	defer doc.Close()

	if err := doc.ReplaceAll(serviceOrderPlaceholders(o, ap, opts)); err != nil {
		return nil, fmt.Errorf("fill docx template: %w", err)
	}

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return out.Bytes(), nil
}

func serviceOrderPlaceholders(o models.ServiceOrder, ap *models.Appointment, opts Options) docx.PlaceholderMap {
	m := docx.PlaceholderMap{
		"business_name":    "",
		"business_details": "",
		"title":            fmt.Sprintf("Ordem de Serviço #%d - %s", o.ID, o.Name),
		"client":           "",
		"service":          "",
		"date":             "",
		"status":           "Status: " + o.Status,
		"issued_at":        "Emitida em: " + format.DisplayTimestamp(o.CreatedAt, opts.Location, opts.Locale),
		"description":      o.Description,
		"items":            "",
		"total":            "Total: " + format.FormatCurrency(o.TotalValue, opts.Locale),
	}

	if b := opts.Business; b.Name != "" {
		m["business_name"] = b.Name
		var details []string
		for _, line := range []string{b.Document, b.Address, strings.TrimSpace(b.Phone + " " + b.Email)} {
			if line != "" {
				details = append(details, line)
			}
		}
		m["business_details"] = strings.Join(details, " · ")
	}

	if ap != nil {
		m["client"] = "Cliente: " + ap.ClientName
		m["service"] = "Serviço: " + ap.Service
		m["date"] = "Data: " + opts.date(ap.Date) + " " + ap.Time
	}

	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, it.Description+": "+format.FormatCurrency(it.Value, opts.Locale))
	}
	if len(items) == 0 {
		items = append(items, "Sem itens")
	}
	m["items"] = strings.Join(items, "; ")

	return m
}
