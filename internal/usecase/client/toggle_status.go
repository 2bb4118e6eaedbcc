package client

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type ToggleClientStatus struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewToggleClientStatus(ws *workspace.Workspace, audit *audit.Dispatcher) *ToggleClientStatus {
	return &ToggleClientStatus{ws: ws, audit: audit}
}

func (uc *ToggleClientStatus) Execute(ctx context.Context, clientID uint) (*models.Client, error) {
	updated, err := uc.ws.Clients.Update(ctx, clientID, func(c *models.Client) error {
		c.Status = string(domain.Status(c.Status).Toggle())
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "client_status_changed", "client", updated.ID, map[string]any{
		"status": updated.Status,
	})
	return &updated, nil
}
