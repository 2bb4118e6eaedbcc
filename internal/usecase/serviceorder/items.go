package serviceorder

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// ManageItems altera os itens de uma OS; o total é recalculado a cada
// operação e gravado junto.
type ManageItems struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewManageItems(ws *workspace.Workspace, audit *audit.Dispatcher) *ManageItems {
	return &ManageItems{ws: ws, audit: audit}
}

func (uc *ManageItems) Add(ctx context.Context, orderID uint, description string, value decimal.Decimal) (*models.ServiceOrder, error) {
	return uc.apply(ctx, orderID, "service_order_item_added", func(o models.ServiceOrder) (models.ServiceOrder, error) {
		return domain.AddItem(o, description, value)
	})
}

func (uc *ManageItems) Edit(ctx context.Context, orderID, itemID uint, description string, value decimal.Decimal) (*models.ServiceOrder, error) {
	return uc.apply(ctx, orderID, "service_order_item_edited", func(o models.ServiceOrder) (models.ServiceOrder, error) {
		i := domain.IndexOf(o, itemID)
		if i < 0 {
			return o, httperr.ErrBusiness("item_not_found")
		}
		return domain.EditItem(o, i, description, value)
	})
}

func (uc *ManageItems) Remove(ctx context.Context, orderID, itemID uint) (*models.ServiceOrder, error) {
	return uc.apply(ctx, orderID, "service_order_item_removed", func(o models.ServiceOrder) (models.ServiceOrder, error) {
		i := domain.IndexOf(o, itemID)
		if i < 0 {
			return o, httperr.ErrBusiness("item_not_found")
		}
		return domain.RemoveItem(o, i)
	})
}

func (uc *ManageItems) apply(
	ctx context.Context,
	orderID uint,
	action string,
	change func(models.ServiceOrder) (models.ServiceOrder, error),
) (*models.ServiceOrder, error) {

	updated, err := uc.ws.ServiceOrders.Update(ctx, orderID, func(o *models.ServiceOrder) error {
		next, err := change(*o)
		if err != nil {
			return err
		}
		*o = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, action, "service_order", updated.ID, map[string]any{
		"items": len(updated.Items),
		"total": updated.TotalValue.StringFixed(2),
	})
	return &updated, nil
}
