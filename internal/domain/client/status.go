package client

type Status string

const (
	StatusActive   Status = "Ativo"
	StatusInactive Status = "Inativo"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggle alterna entre ativo e inativo.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

func InitialStatus() Status {
	return StatusActive
}
