package serviceorder

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/service-desk/internal/export"
	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/timezone"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type BusinessSource interface {
	GetBusiness(ctx context.Context) (*models.Business, error)
}

type Export struct {
	ws       *workspace.Workspace
	business BusinessSource

	// usados quando ainda não há cadastro da empresa
	defaultTimezone string
	defaultLocale   format.Locale
}

func NewExport(ws *workspace.Workspace, business BusinessSource, tz string, locale format.Locale) *Export {
	return &Export{ws: ws, business: business, defaultTimezone: tz, defaultLocale: locale}
}

func (uc *Export) options(ctx context.Context) (export.Options, error) {
	opts := export.Options{
		Locale:   uc.defaultLocale,
		Location: timezone.Location(uc.defaultTimezone),
	}
	if uc.business == nil {
		return opts, nil
	}

	b, err := uc.business.GetBusiness(ctx)
	if err != nil {
		return opts, err
	}
	if b != nil {
		opts.Business = *b
		if b.Locale != "" {
			opts.Locale = format.ParseLocale(b.Locale)
		}
		if b.Timezone != "" {
			opts.Location = timezone.Location(b.Timezone)
		}
	}
	return opts, nil
}

// Docx gera o documento da OS e o nome de arquivo sugerido.
func (uc *Export) Docx(ctx context.Context, orderID uint) ([]byte, string, error) {
	o, err := uc.ws.ServiceOrders.Find(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	opts, err := uc.options(ctx)
	if err != nil {
		return nil, "", err
	}

	var ap *models.Appointment
	if o.AppointmentID != nil {
		if a, ok := uc.ws.Appointments.Get(*o.AppointmentID); ok {
			ap = &a
		}
	}

	b, err := export.ServiceOrderDocx(o, ap, opts)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("ordem-servico-%d.docx", o.ID), nil
}

// Xlsx exporta as ordens já filtradas.
func (uc *Export) Xlsx(ctx context.Context, orders []models.ServiceOrder) ([]byte, error) {
	opts, err := uc.options(ctx)
	if err != nil {
		return nil, err
	}

	aps := make(map[uint]models.Appointment)
	for _, ap := range uc.ws.Appointments.List() {
		aps[ap.ID] = ap
	}
	return export.ServiceOrdersXlsx(orders, aps, opts)
}
