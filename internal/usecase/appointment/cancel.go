package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type CancelAppointment struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCancelAppointment(ws *workspace.Workspace, audit *audit.Dispatcher) *CancelAppointment {
	return &CancelAppointment{ws: ws, audit: audit}
}

// Execute só cancela agendamentos em andamento; a OS já emitida continua
// existindo e não é alterada.
func (uc *CancelAppointment) Execute(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.ws.Appointments.Update(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Cancel(ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "appointment_cancelled", "appointment", ap.ID, nil)
	return &ap, nil
}
