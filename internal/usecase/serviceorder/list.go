package serviceorder

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/domain/guard"
	"github.com/BruksfildServices01/service-desk/internal/domain/linker"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type ListServiceOrdersInput struct {
	domain.Filter

	// ClientID filtra pelo dono do agendamento vinculado.
	ClientID uint
}

type ServiceOrderView struct {
	models.ServiceOrder
	ClientName string `json:"client_name"`
	Deletable  bool   `json:"deletable"`
}

type ListServiceOrders struct {
	ws *workspace.Workspace
}

func NewListServiceOrders(ws *workspace.Workspace) *ListServiceOrders {
	return &ListServiceOrders{ws: ws}
}

func (uc *ListServiceOrders) Execute(in ListServiceOrdersInput) []ServiceOrderView {
	aps := make(map[uint]models.Appointment)
	for _, ap := range uc.ws.Appointments.List() {
		aps[ap.ID] = ap
	}

	orders := in.Filter.Apply(uc.ws.ServiceOrders.List())
	out := make([]ServiceOrderView, 0, len(orders))
	for _, o := range orders {
		var ap models.Appointment
		if o.AppointmentID != nil {
			ap = aps[*o.AppointmentID]
		}
		if in.ClientID != 0 && ap.ClientID != in.ClientID {
			continue
		}
		out = append(out, ServiceOrderView{
			ServiceOrder: o,
			ClientName:   ap.ClientName,
			Deletable:    guard.CanDeleteServiceOrder(o),
		})
	}
	return out
}

func (uc *ListServiceOrders) Get(ctx context.Context, id uint) (*models.ServiceOrder, error) {
	o, err := uc.ws.ServiceOrders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Reconcile corrige os flags de agendamento que divergem das ordens.
type Reconcile struct {
	ws *workspace.Workspace
}

func NewReconcile(ws *workspace.Workspace) *Reconcile {
	return &Reconcile{ws: ws}
}

func (uc *Reconcile) Execute(ctx context.Context) ([]linker.Repair, error) {
	return uc.ws.Linker.Reconcile(ctx)
}
