package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

const XlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	ordersSheet = "Ordens"
	itemsSheet  = "Itens"
)

// ServiceOrdersXlsx gera a planilha com uma aba de ordens e outra de itens.
func ServiceOrdersXlsx(orders []models.ServiceOrder, appointments map[uint]models.Appointment, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	orderCols := []string{"OS", "Nome", "Cliente", "Serviço", "Data", "Status", "Itens", "Total", "Criada em"}
	itemCols := []string{"OS", "Item", "Valor"}
	if err := writeRow(f, ordersSheet, 1, toAny(orderCols)); err != nil {
		return nil, err
	}
	if err := writeRow(f, itemsSheet, 1, toAny(itemCols)); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ordersSheet, "A1", "I1", header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(itemsSheet, "A1", "C1", header); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, o := range orders {
		row := i + 2

		var client, service, date string
		if o.AppointmentID != nil {
			if ap, ok := appointments[*o.AppointmentID]; ok {
				client, service, date = ap.ClientName, ap.Service, opts.date(ap.Date)
			}
		}

		values := []any{
			o.ID, o.Name, client, service, date, o.Status, len(o.Items),
			o.TotalValue.InexactFloat64(),
			format.DisplayTimestamp(o.CreatedAt, opts.Location, opts.Locale),
		}
		if err := writeRow(f, ordersSheet, row, values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(ordersSheet, cell(8, row), cell(8, row), money); err != nil {
			return nil, err
		}

		for _, it := range o.Items {
			if err := writeRow(f, itemsSheet, itemRow, []any{o.ID, it.Description, it.Value.InexactFloat64()}); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(itemsSheet, cell(3, itemRow), cell(3, itemRow), money); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	if err := f.SetColWidth(ordersSheet, "B", "D", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(itemsSheet, "B", "B", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if err := f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
