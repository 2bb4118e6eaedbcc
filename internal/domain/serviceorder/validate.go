package serviceorder

import (
	"strings"

	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

// Validate checa a OS inteira antes de qualquer escrita.
func Validate(o models.ServiceOrder) error {
	fields := map[string]string{}

	if o.AppointmentID == nil || *o.AppointmentID == 0 {
		fields["appointment_id"] = form.MsgRequired
	}
	if strings.TrimSpace(o.Name) == "" {
		fields["name"] = form.MsgRequired
	}
	if !Status(o.Status).Valid() {
		fields["status"] = form.MsgOption
	}
	for _, it := range o.Items {
		if checkItem(it.Description, it.Value) != nil {
			fields["items"] = "Itens precisam de descrição e valor maior que zero."
			break
		}
	}
	if !o.TotalValue.Equal(Total(o.Items)) {
		fields["total_value"] = "Total não confere com os itens."
	}

	if len(fields) > 0 {
		return &httperr.ValidationError{Fields: fields}
	}
	return nil
}
