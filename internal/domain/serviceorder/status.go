package serviceorder

import "github.com/BruksfildServices01/service-desk/internal/httperr"

type Status string

const (
	StatusPending   Status = "Pendente"
	StatusCompleted Status = "Concluída"
	StatusCancelled Status = "Cancelada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Live: a OS conta como gerada para o agendamento enquanto não for cancelada.
func (s Status) Live() bool {
	return s == StatusPending || s == StatusCompleted
}

func InitialStatus() Status {
	return StatusPending
}

// CanTransition aceita Pendente -> Concluída|Cancelada e a reabertura de
// uma OS concluída ou cancelada.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_state")
	}
	if from == to {
		return nil
	}
	if from != StatusPending && to != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
