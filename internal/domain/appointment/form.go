package appointment

import (
	"strings"

	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

const (
	FieldClientName = "client_name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldService    = "service"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldStatus     = "status"
	FieldNotes      = "notes"
)

// NewForm monta o formulário a partir do agendamento carregado.
// Com newClient, telefone e e-mail passam a ser obrigatórios: o cliente
// será criado junto com o agendamento.
func NewForm(ap models.Appointment, newClient bool) *form.State {
	s := form.New(map[string]string{
		FieldClientName: ap.ClientName,
		FieldPhone:      ap.Phone,
		FieldEmail:      ap.Email,
		FieldService:    ap.Service,
		FieldDate:       ap.Date,
		FieldTime:       ap.Time,
		FieldStatus:     ap.Status,
		FieldNotes:      ap.Notes,
	})

	s.AddRules(FieldClientName, form.Required())
	s.AddRules(FieldService, form.Required())
	s.AddRules(FieldDate, form.Required(), form.ISODate())
	s.AddRules(FieldTime, form.Required(), form.ClockTime())
	s.AddRules(FieldStatus, form.OneOf(
		string(StatusInProgress), string(StatusCompleted), string(StatusCancelled),
	))

	SetNewClient(s, newClient)
	return s
}

// SetNewClient entra ou sai do fluxo de novo cliente.
func SetNewClient(s *form.State, newClient bool) {
	s.ClearRules(FieldPhone).ClearRules(FieldEmail)
	if newClient {
		s.AddRules(FieldPhone, form.Required(), form.Phone())
		s.AddRules(FieldEmail, form.Required(), form.Email())
		return
	}
	s.AddRules(FieldPhone, form.Phone())
	s.AddRules(FieldEmail, form.Email())
}

func Apply(s *form.State, ap *models.Appointment) {
	ap.ClientName = strings.TrimSpace(s.Value(FieldClientName))
	ap.Phone = format.FormatPhone(s.Value(FieldPhone))
	ap.Email = strings.ToLower(strings.TrimSpace(s.Value(FieldEmail)))
	ap.Service = strings.TrimSpace(s.Value(FieldService))
	ap.Date = strings.TrimSpace(s.Value(FieldDate))
	ap.Time = strings.TrimSpace(s.Value(FieldTime))
	ap.Notes = strings.TrimSpace(s.Value(FieldNotes))
	ap.Status = s.Value(FieldStatus)
	if ap.Status == "" {
		ap.Status = string(InitialStatus())
	}
}

func Validate(ap models.Appointment) error {
	return NewForm(ap, false).Validate()
}
