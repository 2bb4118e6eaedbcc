package client

import (
	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type ListClients struct {
	ws *workspace.Workspace
}

func NewListClients(ws *workspace.Workspace) *ListClients {
	return &ListClients{ws: ws}
}

func (uc *ListClients) Execute(f domain.Filter) []models.Client {
	return f.Apply(uc.ws.Clients.List())
}

// Pending devolve as contagens que bloqueiam a exclusão do cliente.
func (uc *ListClients) Pending(clientID uint) (appointments, serviceOrders int) {
	return uc.ws.Guard.CountPendingAppointments(clientID), uc.ws.Guard.CountPendingServiceOrders(clientID)
}

// Suggest alimenta o autocomplete de nomes (clientes ativos).
func (uc *ListClients) Suggest(query string, limit int) []string {
	active := domain.Filter{Status: domain.StatusActive}.Apply(uc.ws.Clients.List())
	names := make([]string, 0, len(active))
	for _, c := range active {
		names = append(names, c.Name)
	}
	return suggest.Filter(names, query, limit)
}
