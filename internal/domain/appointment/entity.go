package appointment

import (
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	return nil
}

func Reopen(ap *models.Appointment) error {
	if err := CanReopen(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusInProgress)
	return nil
}

// Transition leva o agendamento ao status pedido pelas ações acima.
func Transition(ap *models.Appointment, to Status) error {
	if Status(ap.Status) == to {
		return nil
	}
	switch to {
	case StatusCompleted:
		return Complete(ap)
	case StatusCancelled:
		return Cancel(ap)
	case StatusInProgress:
		return Reopen(ap)
	}
	return httperr.ErrBusiness("invalid_state")
}
