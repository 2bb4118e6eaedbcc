package serviceorder

import (
	"context"
	"log"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/collection"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/storage"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type DeleteServiceOrder struct {
	ws      *workspace.Workspace
	storage storage.Provider
	audit   *audit.Dispatcher
}

func NewDeleteServiceOrder(ws *workspace.Workspace, storage storage.Provider, audit *audit.Dispatcher) *DeleteServiceOrder {
	return &DeleteServiceOrder{ws: ws, storage: storage, audit: audit}
}

// Execute exige confirmed para OS pendente. Depois da exclusão o flag do
// agendamento é refeito e o anexo removido (falha no anexo só é logada).
func (uc *DeleteServiceOrder) Execute(ctx context.Context, orderID uint, confirmed bool) error {
	removed, err := uc.ws.ServiceOrders.Delete(ctx, orderID, collection.Confirmed(confirmed))
	if err != nil {
		return err
	}

	uc.audit.Record(ctx, "service_order_deleted", "service_order", removed.ID, map[string]any{
		"status":    removed.Status,
		"confirmed": confirmed,
	})

	if removed.PDFPath != "" && uc.storage != nil {
		if err := uc.storage.Delete(ctx, removed.PDFPath); err != nil {
			log.Printf("[service_order] delete attachment %s: %v", removed.PDFPath, err)
		}
	}

	if err := uc.ws.Linker.OnOrderDeleted(ctx, removed); err != nil {
		return &httperr.PartialWriteError{Completed: "service_order_delete", Failed: "appointment", Err: err}
	}
	return nil
}
