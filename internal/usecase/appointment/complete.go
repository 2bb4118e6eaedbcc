package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type CompleteAppointment struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCompleteAppointment(ws *workspace.Workspace, audit *audit.Dispatcher) *CompleteAppointment {
	return &CompleteAppointment{ws: ws, audit: audit}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.ws.Appointments.Update(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Complete(ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_completed", "appointment", ap.ID, nil)
	return &ap, nil
}
