package appointment

import "github.com/BruksfildServices01/service-desk/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusInProgress Status = "Em Andamento"
	StatusCompleted  Status = "Concluído"
	StatusCancelled  Status = "Cancelado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal: concluído ou cancelado. Só status não terminais bloqueiam a
// exclusão do cliente.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReopen volta um agendamento encerrado para andamento
func CanReopen(current Status) error {
	if !current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusInProgress
}
