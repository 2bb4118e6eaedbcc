package client

import (
	"strings"

	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldStatus  = "status"
)

// NewForm carrega o cliente como snapshot do formulário.
func NewForm(c models.Client) *form.State {
	s := form.New(map[string]string{
		FieldName:    c.Name,
		FieldEmail:   c.Email,
		FieldPhone:   c.Phone,
		FieldAddress: c.Address,
		FieldStatus:  c.Status,
	})
	s.AddRules(FieldName, form.Required())
	s.AddRules(FieldEmail, form.Email())
	s.AddRules(FieldPhone, form.Phone())
	s.AddRules(FieldStatus, form.OneOf(string(StatusActive), string(StatusInactive)))
	return s
}

// Apply grava os valores do formulário no cliente, com telefone mascarado.
func Apply(s *form.State, c *models.Client) {
	c.Name = strings.TrimSpace(s.Value(FieldName))
	c.Email = strings.ToLower(strings.TrimSpace(s.Value(FieldEmail)))
	c.Phone = format.FormatPhone(s.Value(FieldPhone))
	c.Address = strings.TrimSpace(s.Value(FieldAddress))
	c.Status = s.Value(FieldStatus)
	if c.Status == "" {
		c.Status = string(InitialStatus())
	}
}

// Validate é a checagem mínima aplicada pela coleção antes de gravar.
func Validate(c models.Client) error {
	return NewForm(c).Validate()
}

// FindByName compara nomes sem diferenciar maiúsculas.
func FindByName(clients []models.Client, name string) (models.Client, bool) {
	name = strings.TrimSpace(name)
	for _, c := range clients {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return c, true
		}
	}
	return models.Client{}, false
}
