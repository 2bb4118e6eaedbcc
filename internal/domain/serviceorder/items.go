package serviceorder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

// ====================================================
// Items
// ====================================================
//
// As funções recebem a OS por valor e devolvem uma cópia com um novo slice
// de itens: a OS guardada na coleção nunca é alterada no lugar.

func checkItem(description string, value decimal.Decimal) error {
	fields := map[string]string{}
	if strings.TrimSpace(description) == "" {
		fields["description"] = form.MsgRequired
	}
	if !value.IsPositive() {
		fields["value"] = form.MsgPositive
	}
	if len(fields) > 0 {
		return &httperr.ValidationError{Fields: fields}
	}
	return nil
}

func AddItem(o models.ServiceOrder, description string, value decimal.Decimal) (models.ServiceOrder, error) {
	if err := checkItem(description, value); err != nil {
		return o, err
	}

	items := make([]models.ServiceOrderItem, 0, len(o.Items)+1)
	items = append(items, o.Items...)
	items = append(items, models.ServiceOrderItem{
		ServiceOrderID: o.ID,
		Description:    strings.TrimSpace(description),
		Value:          value.Round(2),
	})

	o.Items = items
	o.TotalValue = Total(items)
	return o, nil
}

// EditItem troca descrição e valor do item na posição index.
func EditItem(o models.ServiceOrder, index int, description string, value decimal.Decimal) (models.ServiceOrder, error) {
	if index < 0 || index >= len(o.Items) {
		return o, httperr.ErrBusiness("item_not_found")
	}
	if err := checkItem(description, value); err != nil {
		return o, err
	}

	items := append([]models.ServiceOrderItem(nil), o.Items...)
	items[index].Description = strings.TrimSpace(description)
	items[index].Value = value.Round(2)

	o.Items = items
	o.TotalValue = Total(items)
	return o, nil
}

func RemoveItem(o models.ServiceOrder, index int) (models.ServiceOrder, error) {
	if index < 0 || index >= len(o.Items) {
		return o, httperr.ErrBusiness("item_not_found")
	}

	items := make([]models.ServiceOrderItem, 0, len(o.Items)-1)
	items = append(items, o.Items[:index]...)
	items = append(items, o.Items[index+1:]...)

	o.Items = items
	o.TotalValue = Total(items)
	return o, nil
}

// IndexOf localiza o item pelo id gravado.
func IndexOf(o models.ServiceOrder, itemID uint) int {
	for i, it := range o.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func Total(items []models.ServiceOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value)
	}
	return total.Round(2)
}
