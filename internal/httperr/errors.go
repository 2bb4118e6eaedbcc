package httperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carrega os erros de campo de um formulário.
// Nunca chega ao banco: é resolvido localmente.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// DependencyError bloqueia uma exclusão enquanto houver registros pendentes.
type DependencyError struct {
	Entity        string
	ID            uint
	Appointments  int
	ServiceOrders int

	// Confirmable indica bloqueio que o usuário pode confirmar explicitamente.
	Confirmable bool
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf(
		"%s %d has pending dependencies (appointments=%d, service_orders=%d)",
		e.Entity, e.ID, e.Appointments, e.ServiceOrders,
	)
}

// Pending é o total de registros que impedem a exclusão.
func (e *DependencyError) Pending() int {
	return e.Appointments + e.ServiceOrders
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// RemoteError indica que o armazenamento recusou uma leitura ou escrita.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// PartialWriteError descreve uma sequência de escritas interrompida:
// o passo Completed ficou gravado e o passo Failed não.
type PartialWriteError struct {
	Completed string
	Failed    string
	Err       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s saved but %s failed: %v", e.Completed, e.Failed, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func AsDependency(err error) (*DependencyError, bool) {
	var de *DependencyError
	ok := errors.As(err, &de)
	return de, ok
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
