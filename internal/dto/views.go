package dto

import (
	"time"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/statuscolor"
)

// Display carrega o idioma e o fuso da empresa para os campos formatados.
type Display struct {
	Locale   format.Locale
	Location *time.Location
}

func (d Display) date(iso string) string {
	s, err := format.FormatDisplayDate(iso, d.Locale)
	if err != nil {
		return iso
	}
	return s
}

func (d Display) timestamp(t time.Time) string {
	return format.DisplayTimestamp(t, d.Location, d.Locale)
}

// ======================================================
// CLIENT
// ======================================================

type ClientDTO struct {
	models.Client

	PhoneDisplay     string             `json:"phone_display"`
	CreatedAtDisplay string             `json:"created_at_display"`
	Colors           statuscolor.Colors `json:"colors"`

	PendingAppointments  int `json:"pending_appointments"`
	PendingServiceOrders int `json:"pending_service_orders"`
}

func NewClientDTO(c models.Client, d Display, appointments, serviceOrders int) ClientDTO {
	return ClientDTO{
		Client:               c,
		PhoneDisplay:         format.FormatPhone(c.Phone),
		CreatedAtDisplay:     d.timestamp(c.CreatedAt),
		Colors:               statuscolor.Resolve(c.Status),
		PendingAppointments:  appointments,
		PendingServiceOrders: serviceOrders,
	}
}

// ======================================================
// APPOINTMENT
// ======================================================

type AppointmentDTO struct {
	models.Appointment

	// OrderState vem do linker, não do flag gravado.
	OrderState  string             `json:"order_state"`
	DateDisplay string             `json:"date_display"`
	Colors      statuscolor.Colors `json:"colors"`
}

func NewAppointmentDTO(ap models.Appointment, orderState string, d Display) AppointmentDTO {
	return AppointmentDTO{
		Appointment: ap,
		OrderState:  orderState,
		DateDisplay: d.date(ap.Date),
		Colors:      statuscolor.Resolve(ap.Status),
	}
}

// ======================================================
// SERVICE ORDER
// ======================================================

type ServiceOrderDTO struct {
	models.ServiceOrder

	ClientName       string             `json:"client_name"`
	Deletable        bool               `json:"deletable"`
	TotalDisplay     string             `json:"total_display"`
	CreatedAtDisplay string             `json:"created_at_display"`
	Colors           statuscolor.Colors `json:"colors"`
}

func NewServiceOrderDTO(o models.ServiceOrder, clientName string, deletable bool, d Display) ServiceOrderDTO {
	return ServiceOrderDTO{
		ServiceOrder:     o,
		ClientName:       clientName,
		Deletable:        deletable,
		TotalDisplay:     format.FormatCurrency(o.TotalValue, d.Locale),
		CreatedAtDisplay: d.timestamp(o.CreatedAt),
		Colors:           statuscolor.Resolve(o.Status),
	}
}
