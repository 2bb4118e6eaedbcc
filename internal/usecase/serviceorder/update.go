package serviceorder

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	apdomain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type UpdateServiceOrderInput struct {
	ID uint

	Name          *string
	Description   *string
	Status        *string
	AppointmentID *uint
}

type UpdateServiceOrder struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewUpdateServiceOrder(ws *workspace.Workspace, audit *audit.Dispatcher) *UpdateServiceOrder {
	return &UpdateServiceOrder{ws: ws, audit: audit}
}

func (uc *UpdateServiceOrder) Execute(ctx context.Context, in UpdateServiceOrderInput) (*models.ServiceOrder, error) {
	current, err := uc.ws.ServiceOrders.Find(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	var oldAp uint
	if current.AppointmentID != nil {
		oldAp = *current.AppointmentID
	}
	newAp := oldAp
	if in.AppointmentID != nil {
		newAp = *in.AppointmentID
	}

	status := domain.Status(current.Status)
	if in.Status != nil {
		status = domain.Status(*in.Status)
		if err := domain.CanTransition(domain.Status(current.Status), status); err != nil {
			return nil, err
		}
	}

	relinked := newAp != oldAp
	revived := status.Live() && !domain.Status(current.Status).Live()

	// --------------------------------------------------
	// Novo vínculo ou OS reaberta: o agendamento alvo não pode ter
	// outra OS ativa.
	// --------------------------------------------------
	if relinked || revived {
		if err := uc.checkTarget(ctx, newAp, current.ID, status); err != nil {
			return nil, err
		}
	}

	updated, err := uc.ws.ServiceOrders.Update(ctx, in.ID, func(o *models.ServiceOrder) error {
		if in.Name != nil {
			o.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			o.Description = strings.TrimSpace(*in.Description)
		}
		o.Status = string(status)
		if relinked {
			id := newAp
			o.AppointmentID = &id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "service_order_updated", "service_order", updated.ID, map[string]any{
		"status":         updated.Status,
		"appointment_id": newAp,
	})

	var syncErr error
	switch {
	case relinked:
		syncErr = uc.ws.Linker.OnOrderRelinked(ctx, oldAp, newAp)
	case string(status) != current.Status:
		syncErr = uc.ws.Linker.OnOrderStatusChanged(ctx, updated)
	}
	if syncErr != nil {
		return &updated, &httperr.PartialWriteError{Completed: "service_order", Failed: "appointment", Err: syncErr}
	}
	return &updated, nil
}

func (uc *UpdateServiceOrder) checkTarget(ctx context.Context, apID, orderID uint, status domain.Status) error {
	if apID == 0 {
		return httperr.ErrBusiness("appointment_required")
	}
	ap, err := uc.ws.Appointments.Find(ctx, apID)
	if err != nil {
		return err
	}
	if !status.Live() {
		return nil
	}
	if apdomain.Status(ap.Status) == apdomain.StatusCancelled {
		return httperr.ErrBusiness("appointment_cancelled")
	}
	if live, ok := uc.ws.Linker.LiveOrder(apID); ok && live.ID != orderID {
		return httperr.ErrBusiness("service_order_already_exists")
	}
	return nil
}
