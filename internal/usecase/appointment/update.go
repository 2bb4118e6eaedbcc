package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	clientdomain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// Campos nil ficam como estão.
type UpdateAppointmentInput struct {
	ID uint

	ClientName  *string
	ClientPhone *string
	ClientEmail *string
	Service     *string
	Date        *string
	Time        *string
	Notes       *string
	Status      *string
}

type UpdateAppointmentOutput struct {
	Appointment models.Appointment
	Changed     []string
}

type UpdateAppointment struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewUpdateAppointment(ws *workspace.Workspace, audit *audit.Dispatcher) *UpdateAppointment {
	return &UpdateAppointment{ws: ws, audit: audit}
}

func (uc *UpdateAppointment) Execute(ctx context.Context, in UpdateAppointmentInput) (*UpdateAppointmentOutput, error) {
	current, err := uc.ws.Appointments.Find(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	phone := in.ClientPhone
	if phone != nil && format.IsValidPhone(*phone) {
		masked := format.FormatPhone(*phone)
		phone = &masked
	}

	s := domain.NewForm(current, false)
	s.SetIf(domain.FieldClientName, in.ClientName).
		SetIf(domain.FieldPhone, phone).
		SetIf(domain.FieldEmail, in.ClientEmail).
		SetIf(domain.FieldService, in.Service).
		SetIf(domain.FieldDate, in.Date).
		SetIf(domain.FieldTime, in.Time).
		SetIf(domain.FieldNotes, in.Notes).
		SetIf(domain.FieldStatus, in.Status)

	if !s.HasChanges() {
		return &UpdateAppointmentOutput{Appointment: current}, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	// nome trocado para o de outro cliente cadastrado move o vínculo
	clientID := current.ClientID
	if in.ClientName != nil {
		if c, ok := clientdomain.FindByName(uc.ws.Clients.List(), *in.ClientName); ok {
			clientID = c.ID
		}
	}

	changed := s.Changed()
	updated, err := uc.ws.Appointments.Update(ctx, in.ID, func(ap *models.Appointment) error {
		target := domain.Status(s.Value(domain.FieldStatus))
		if err := domain.Transition(ap, target); err != nil {
			return err
		}
		status := ap.Status

		domain.Apply(s, ap)
		ap.Status = status
		ap.ClientID = clientID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_updated", "appointment", updated.ID, map[string]any{
		"fields": changed,
	})
	return &UpdateAppointmentOutput{Appointment: updated, Changed: changed}, nil
}
