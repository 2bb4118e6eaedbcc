package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type DeleteAppointment struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewDeleteAppointment(ws *workspace.Workspace, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{ws: ws, audit: audit}
}

// Execute é bloqueado enquanto houver OS não cancelada para o agendamento.
func (uc *DeleteAppointment) Execute(ctx context.Context, appointmentID uint) error {
	removed, err := uc.ws.Appointments.Delete(ctx, appointmentID)
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "appointment_deleted", "appointment", removed.ID, map[string]any{
		"client_id": removed.ClientID,
		"date":      removed.Date,
	})
	return nil
}
