package serviceorder

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	apdomain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// ======================================================
// INPUT
// ======================================================

type ItemInput struct {
	Description string
	Value       decimal.Decimal
}

type CreateServiceOrderInput struct {
	AppointmentID uint
	Name          string
	Description   string
	Items         []ItemInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateServiceOrder struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCreateServiceOrder(ws *workspace.Workspace, audit *audit.Dispatcher) *CreateServiceOrder {
	return &CreateServiceOrder{ws: ws, audit: audit}
}

// Execute grava a OS e depois marca o agendamento. Se a segunda escrita
// falhar a OS fica gravada e o erro é PartialWriteError; o flag é refeito
// pelo Reconcile.
func (uc *CreateServiceOrder) Execute(
	ctx context.Context,
	in CreateServiceOrderInput,
) (*models.ServiceOrder, error) {

	// --------------------------------------------------
	// 1️⃣ Agendamento
	// --------------------------------------------------
	if in.AppointmentID == 0 {
		return nil, httperr.ErrBusiness("appointment_required")
	}
	ap, err := uc.ws.Appointments.Find(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if apdomain.Status(ap.Status) == apdomain.StatusCancelled {
		return nil, httperr.ErrBusiness("appointment_cancelled")
	}
	if uc.ws.Linker.HasLiveOrder(ap.ID) {
		return nil, httperr.ErrBusiness("service_order_already_exists")
	}

	// --------------------------------------------------
	// 2️⃣ Montagem da OS
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = ap.Service
	}

	apID := ap.ID
	o := models.ServiceOrder{
		AppointmentID: &apID,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Status:        string(domain.InitialStatus()),
		TotalValue:    decimal.Zero,
	}
	for _, it := range in.Items {
		if o, err = domain.AddItem(o, it.Description, it.Value); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Gravação: OS, depois o agendamento
	// --------------------------------------------------
	created, err := uc.ws.ServiceOrders.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "service_order_created", "service_order", created.ID, map[string]any{
		"appointment_id": ap.ID,
		"total":          created.TotalValue.StringFixed(2),
	})

	if err := uc.ws.Linker.OnOrderCreated(ctx, created); err != nil {
		return &created, &httperr.PartialWriteError{Completed: "service_order", Failed: "appointment", Err: err}
	}
	return &created, nil
}
