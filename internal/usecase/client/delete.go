package client

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type DeleteClient struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewDeleteClient(ws *workspace.Workspace, audit *audit.Dispatcher) *DeleteClient {
	return &DeleteClient{ws: ws, audit: audit}
}

// Execute recusa com DependencyError enquanto houver agendamento em
// andamento ou OS pendente do cliente.
func (uc *DeleteClient) Execute(ctx context.Context, clientID uint) error {
	removed, err := uc.ws.Clients.Delete(ctx, clientID)
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "client_deleted", "client", removed.ID, map[string]any{
		"name": removed.Name,
	})
	return nil
}
