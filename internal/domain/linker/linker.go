// Package linker keeps Appointment.ServiceOrderGenerated in line with the
// service orders that actually exist. The flag is a cache: the order
// collection is the source of truth and every write here is derived from it.
package linker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

type State string

const (
	NoOrder        State = "no_order"
	OrderPending   State = "order_pending"
	OrderCompleted State = "order_completed"
	OrderCancelled State = "order_cancelled"
)

type Appointments interface {
	Get(id uint) (models.Appointment, bool)
	List() []models.Appointment
	Update(ctx context.Context, id uint, mutate func(*models.Appointment) error) (models.Appointment, error)
}

type ServiceOrders interface {
	List() []models.ServiceOrder
}

type Linker struct {
	appointments  Appointments
	serviceOrders ServiceOrders
}

func New(appointments Appointments, serviceOrders ServiceOrders) *Linker {
	return &Linker{appointments: appointments, serviceOrders: serviceOrders}
}

func (l *Linker) ordersFor(appointmentID uint) []models.ServiceOrder {
	var out []models.ServiceOrder
	for _, o := range l.serviceOrders.List() {
		if o.AppointmentID != nil && *o.AppointmentID == appointmentID {
			out = append(out, o)
		}
	}
	return out
}

// HasLiveOrder: existe OS pendente ou concluída para o agendamento.
func (l *Linker) HasLiveOrder(appointmentID uint) bool {
	for _, o := range l.ordersFor(appointmentID) {
		if serviceorder.Status(o.Status).Live() {
			return true
		}
	}
	return false
}

// LiveOrder devolve a OS não cancelada do agendamento, se houver.
func (l *Linker) LiveOrder(appointmentID uint) (models.ServiceOrder, bool) {
	for _, o := range l.ordersFor(appointmentID) {
		if serviceorder.Status(o.Status).Live() {
			return o, true
		}
	}
	return models.ServiceOrder{}, false
}

func (l *Linker) State(appointmentID uint) State {
	state := NoOrder
	for _, o := range l.ordersFor(appointmentID) {
		switch serviceorder.Status(o.Status) {
		case serviceorder.StatusPending:
			return OrderPending
		case serviceorder.StatusCompleted:
			state = OrderCompleted
		case serviceorder.StatusCancelled:
			if state == NoOrder {
				state = OrderCancelled
			}
		}
	}
	return state
}

// Sync grava no agendamento o valor derivado das OS. Agendamento
// inexistente não é erro: a OS pode sobreviver ao agendamento cancelado.
func (l *Linker) Sync(ctx context.Context, appointmentID uint) error {
	ap, ok := l.appointments.Get(appointmentID)
	if !ok {
		return nil
	}

	want := l.HasLiveOrder(appointmentID)
	if ap.ServiceOrderGenerated == want {
		return nil
	}

	_, err := l.appointments.Update(ctx, appointmentID, func(a *models.Appointment) error {
		a.ServiceOrderGenerated = want
		return nil
	})
	if err != nil {
		return fmt.Errorf("sync appointment %d: %w", appointmentID, err)
	}
	return nil
}

func (l *Linker) OnOrderCreated(ctx context.Context, o models.ServiceOrder) error {
	if o.AppointmentID == nil {
		return nil
	}
	return l.Sync(ctx, *o.AppointmentID)
}

func (l *Linker) OnOrderDeleted(ctx context.Context, o models.ServiceOrder) error {
	if o.AppointmentID == nil {
		return nil
	}
	return l.Sync(ctx, *o.AppointmentID)
}

func (l *Linker) OnOrderStatusChanged(ctx context.Context, o models.ServiceOrder) error {
	if o.AppointmentID == nil {
		return nil
	}
	return l.Sync(ctx, *o.AppointmentID)
}

// OnOrderRelinked sincroniza o agendamento antigo e o novo.
func (l *Linker) OnOrderRelinked(ctx context.Context, from, to uint) error {
	var errs []error
	for _, id := range []uint{from, to} {
		if id == 0 {
			continue
		}
		if err := l.Sync(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Repair struct {
	AppointmentID uint `json:"appointment_id"`
	From          bool `json:"from"`
	To            bool `json:"to"`
}

// Reconcile percorre todos os agendamentos e corrige os flags divergentes.
// Falhas individuais não interrompem a varredura.
func (l *Linker) Reconcile(ctx context.Context) ([]Repair, error) {
	var (
		repairs []Repair
		errs    []error
	)

	for _, ap := range l.appointments.List() {
		want := l.HasLiveOrder(ap.ID)
		if ap.ServiceOrderGenerated == want {
			continue
		}
		if err := l.Sync(ctx, ap.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		repairs = append(repairs, Repair{AppointmentID: ap.ID, From: ap.ServiceOrderGenerated, To: want})
	}

	if len(repairs) > 0 {
		log.Printf("[linker] reconcile repaired %d appointment(s)", len(repairs))
	}
	return repairs, errors.Join(errs...)
}

// Resolve devolve cópias com o flag substituído pelo valor derivado das OS.
func (l *Linker) Resolve(aps []models.Appointment) []models.Appointment {
	live := map[uint]bool{}
	for _, o := range l.serviceOrders.List() {
		if o.AppointmentID != nil && serviceorder.Status(o.Status).Live() {
			live[*o.AppointmentID] = true
		}
	}

	out := make([]models.Appointment, len(aps))
	for i, ap := range aps {
		ap.ServiceOrderGenerated = live[ap.ID]
		out[i] = ap
	}
	return out
}
