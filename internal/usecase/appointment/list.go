package appointment

import (
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/domain/linker"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type AppointmentView struct {
	models.Appointment
	OrderState linker.State `json:"order_state"`
}

type ListAppointments struct {
	ws *workspace.Workspace
}

func NewListAppointments(ws *workspace.Workspace) *ListAppointments {
	return &ListAppointments{ws: ws}
}

// Execute lista com o flag de OS recalculado a partir das ordens.
func (uc *ListAppointments) Execute(f domain.Filter) []AppointmentView {
	list := f.Apply(uc.ws.Linker.Resolve(uc.ws.Appointments.List()))

	out := make([]AppointmentView, 0, len(list))
	for _, ap := range list {
		out = append(out, AppointmentView{Appointment: ap, OrderState: uc.ws.Linker.State(ap.ID)})
	}
	return out
}

func (uc *ListAppointments) Get(id uint) (AppointmentView, bool) {
	ap, ok := uc.ws.Appointments.Get(id)
	if !ok {
		return AppointmentView{}, false
	}
	ap.ServiceOrderGenerated = uc.ws.Linker.HasLiveOrder(ap.ID)
	return AppointmentView{Appointment: ap, OrderState: uc.ws.Linker.State(ap.ID)}, true
}

// SuggestServices junta o catálogo ativo e os serviços já agendados.
func (uc *ListAppointments) SuggestServices(query string, limit int) []string {
	var names []string
	for _, s := range uc.ws.Catalog.List() {
		if s.Active {
			names = append(names, s.Name)
		}
	}
	for _, ap := range uc.ws.Appointments.List() {
		names = append(names, ap.Service)
	}
	return suggest.Filter(names, query, limit)
}
