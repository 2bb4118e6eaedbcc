package client

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// ======================================================
// INPUT
// ======================================================

type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCreateClient(ws *workspace.Workspace, audit *audit.Dispatcher) *CreateClient {
	return &CreateClient{ws: ws, audit: audit}
}

func (uc *CreateClient) Execute(ctx context.Context, in CreateClientInput) (*models.Client, error) {
	s := domain.NewForm(models.Client{})
	s.Set(domain.FieldName, in.Name).
		Set(domain.FieldEmail, in.Email).
		Set(domain.FieldPhone, in.Phone).
		Set(domain.FieldAddress, in.Address)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	if _, exists := domain.FindByName(uc.ws.Clients.List(), in.Name); exists {
		return nil, httperr.ErrBusiness("client_already_exists")
	}

	var c models.Client
	domain.Apply(s, &c)

	created, err := uc.ws.Clients.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "client_created", "client", created.ID, map[string]any{
		"name": created.Name,
	})
	return &created, nil
}
