// Package form keeps the editable state of an entity form: the loaded
// snapshot, the current values, field rules and dirty tracking.
package form

import (
	"sort"

	"github.com/BruksfildServices01/service-desk/internal/httperr"
)

type State struct {
	original map[string]string
	values   map[string]string
	rules    map[string][]Rule
}

// New parte do snapshot carregado; os valores atuais começam iguais a ele.
func New(original map[string]string) *State {
	s := &State{
		original: make(map[string]string, len(original)),
		values:   make(map[string]string, len(original)),
		rules:    make(map[string][]Rule),
	}
	for k, v := range original {
		s.original[k] = v
		s.values[k] = v
	}
	return s
}

func (s *State) AddRules(field string, rules ...Rule) *State {
	s.rules[field] = append(s.rules[field], rules...)
	return s
}

// ClearRules remove as regras de um campo (ex.: sair do fluxo de novo cliente).
func (s *State) ClearRules(field string) *State {
	delete(s.rules, field)
	return s
}

func (s *State) Set(field, value string) *State {
	s.values[field] = value
	return s
}

// SetIf aplica apenas os campos presentes num patch parcial.
func (s *State) SetIf(field string, value *string) *State {
	if value != nil {
		s.values[field] = *value
	}
	return s
}

func (s *State) Value(field string) string {
	return s.values[field]
}

func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Changed lista, em ordem alfabética, os campos diferentes do snapshot.
func (s *State) Changed() []string {
	var out []string
	for k, v := range s.values {
		if s.original[k] != v {
			out = append(out, k)
		}
	}
	for k, v := range s.original {
		if _, ok := s.values[k]; !ok && v != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (s *State) HasChanges() bool {
	return len(s.Changed()) > 0
}

// Discard volta ao snapshot sem consultar o banco.
func (s *State) Discard() {
	s.values = make(map[string]string, len(s.original))
	for k, v := range s.original {
		s.values[k] = v
	}
}

// Errors avalia todas as regras; a primeira falha de cada campo vence.
func (s *State) Errors() map[string]string {
	errs := make(map[string]string)
	for field, rules := range s.rules {
		v := s.values[field]
		for _, rule := range rules {
			if msg := rule(v); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

func (s *State) Validate() error {
	errs := s.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &httperr.ValidationError{Fields: errs}
}
