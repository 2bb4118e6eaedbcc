// Package guard decides whether a delete may proceed, reading the live
// collections at call time.
package guard

import (
	"github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

type AppointmentSource interface {
	List() []models.Appointment
}

type ServiceOrderSource interface {
	List() []models.ServiceOrder
}

type Guard struct {
	appointments  AppointmentSource
	serviceOrders ServiceOrderSource
}

func New(appointments AppointmentSource, serviceOrders ServiceOrderSource) *Guard {
	return &Guard{appointments: appointments, serviceOrders: serviceOrders}
}

// CountPendingAppointments conta os agendamentos do cliente ainda em andamento.
func (g *Guard) CountPendingAppointments(clientID uint) int {
	n := 0
	for _, ap := range g.appointments.List() {
		if ap.ClientID == clientID && !appointment.Status(ap.Status).Terminal() {
			n++
		}
	}
	return n
}

// CountPendingServiceOrders conta as OS pendentes cujo agendamento é do cliente.
func (g *Guard) CountPendingServiceOrders(clientID uint) int {
	owned := map[uint]bool{}
	for _, ap := range g.appointments.List() {
		if ap.ClientID == clientID {
			owned[ap.ID] = true
		}
	}

	n := 0
	for _, o := range g.serviceOrders.List() {
		if o.AppointmentID == nil || !owned[*o.AppointmentID] {
			continue
		}
		if serviceorder.Status(o.Status) == serviceorder.StatusPending {
			n++
		}
	}
	return n
}

func (g *Guard) CheckClientDeletion(clientID uint) error {
	aps := g.CountPendingAppointments(clientID)
	orders := g.CountPendingServiceOrders(clientID)
	if aps == 0 && orders == 0 {
		return nil
	}
	return &httperr.DependencyError{
		Entity:        "client",
		ID:            clientID,
		Appointments:  aps,
		ServiceOrders: orders,
	}
}

func CanDeleteServiceOrder(o models.ServiceOrder) bool {
	return serviceorder.Status(o.Status) != serviceorder.StatusPending
}

// CheckServiceOrderDeletion exige confirmação explícita para OS pendente.
func (g *Guard) CheckServiceOrderDeletion(o models.ServiceOrder, confirmed bool) error {
	if CanDeleteServiceOrder(o) || confirmed {
		return nil
	}
	return &httperr.DependencyError{
		Entity:        "service_order",
		ID:            o.ID,
		ServiceOrders: 1,
		Confirmable:   true,
	}
}

// CheckAppointmentDeletion bloqueia enquanto houver OS não cancelada.
func (g *Guard) CheckAppointmentDeletion(ap models.Appointment) error {
	live := 0
	for _, o := range g.serviceOrders.List() {
		if o.AppointmentID != nil && *o.AppointmentID == ap.ID && serviceorder.Status(o.Status).Live() {
			live++
		}
	}
	if live == 0 {
		return nil
	}
	return &httperr.DependencyError{
		Entity:        "appointment",
		ID:            ap.ID,
		ServiceOrders: live,
	}
}
