package client

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// Campos nil não são alterados.
type UpdateClientInput struct {
	ID      uint
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Status  *string
}

type UpdateClientOutput struct {
	Client  models.Client
	Changed []string
}

type UpdateClient struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewUpdateClient(ws *workspace.Workspace, audit *audit.Dispatcher) *UpdateClient {
	return &UpdateClient{ws: ws, audit: audit}
}

// Execute não grava nada quando nenhum campo mudou.
func (uc *UpdateClient) Execute(ctx context.Context, in UpdateClientInput) (*UpdateClientOutput, error) {
	current, err := uc.ws.Clients.Find(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	s := domain.NewForm(current)
	s.SetIf(domain.FieldName, in.Name).
		SetIf(domain.FieldEmail, in.Email).
		SetIf(domain.FieldPhone, maskedPhone(in.Phone)).
		SetIf(domain.FieldAddress, in.Address).
		SetIf(domain.FieldStatus, in.Status)

	if !s.HasChanges() {
		return &UpdateClientOutput{Client: current}, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if other, ok := domain.FindByName(uc.ws.Clients.List(), *in.Name); ok && other.ID != in.ID {
			return nil, httperr.ErrBusiness("client_already_exists")
		}
	}

	changed := s.Changed()
	updated, err := uc.ws.Clients.Update(ctx, in.ID, func(c *models.Client) error {
		domain.Apply(s, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "client_updated", "client", updated.ID, map[string]any{
		"fields": changed,
	})
	return &UpdateClientOutput{Client: updated, Changed: changed}, nil
}

// maskedPhone aplica a máscara antes da comparação com o original, para que
// o mesmo número digitado sem máscara não conte como alteração.
func maskedPhone(p *string) *string {
	if p == nil || !format.IsValidPhone(*p) {
		return p
	}
	masked := format.FormatPhone(*p)
	return &masked
}
