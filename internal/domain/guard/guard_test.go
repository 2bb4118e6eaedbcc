package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

type fakeAppointments struct{ items []models.Appointment }

func (f *fakeAppointments) List() []models.Appointment { return f.items }

type fakeOrders struct{ items []models.ServiceOrder }

func (f *fakeOrders) List() []models.ServiceOrder { return f.items }

func uintPtr(v uint) *uint { return &v }

func TestPendingAppointmentBlocksClientDeletion(t *testing.T) {
	aps := &fakeAppointments{items: []models.Appointment{
		{ID: 1, ClientID: 10, Status: "Em Andamento"},
		{ID: 2, ClientID: 11, Status: "Em Andamento"},
	}}
	g := New(aps, &fakeOrders{})

	assert.Equal(t, 1, g.CountPendingAppointments(10))

	dep, ok := httperr.AsDependency(g.CheckClientDeletion(10))
	require.True(t, ok)
	assert.Equal(t, 1, dep.Appointments)
	assert.Equal(t, 0, dep.ServiceOrders)

	// Contagem lida no momento da chamada.
	aps.items[0].Status = "Cancelado"
	assert.Equal(t, 0, g.CountPendingAppointments(10))
	assert.NoError(t, g.CheckClientDeletion(10))
}

func TestPendingServiceOrdersFollowAppointmentOwner(t *testing.T) {
	aps := &fakeAppointments{items: []models.Appointment{
		{ID: 1, ClientID: 10, Status: "Concluído"},
		{ID: 2, ClientID: 11, Status: "Concluído"},
	}}
	orders := &fakeOrders{items: []models.ServiceOrder{
		{ID: 100, AppointmentID: uintPtr(1), Status: "Pendente"},
		{ID: 101, AppointmentID: uintPtr(1), Status: "Concluída"},
		{ID: 102, AppointmentID: uintPtr(2), Status: "Pendente"},
		{ID: 103, Status: "Pendente"},
	}}
	g := New(aps, orders)

	assert.Equal(t, 1, g.CountPendingServiceOrders(10))

	dep, ok := httperr.AsDependency(g.CheckClientDeletion(10))
	require.True(t, ok)
	assert.Equal(t, 0, dep.Appointments)
	assert.Equal(t, 1, dep.ServiceOrders)
	assert.Equal(t, 1, dep.Pending())

	assert.NoError(t, g.CheckClientDeletion(12))
}

func TestServiceOrderDeletionNeedsConfirmationWhilePending(t *testing.T) {
	g := New(&fakeAppointments{}, &fakeOrders{})
	pending := models.ServiceOrder{ID: 5, Status: "Pendente"}

	assert.False(t, CanDeleteServiceOrder(pending))
	dep, ok := httperr.AsDependency(g.CheckServiceOrderDeletion(pending, false))
	require.True(t, ok)
	assert.True(t, dep.Confirmable)

	assert.NoError(t, g.CheckServiceOrderDeletion(pending, true))
	assert.NoError(t, g.CheckServiceOrderDeletion(models.ServiceOrder{Status: "Concluída"}, false))
}

func TestAppointmentDeletionBlockedByLiveOrder(t *testing.T) {
	orders := &fakeOrders{items: []models.ServiceOrder{
		{ID: 1, AppointmentID: uintPtr(3), Status: "Concluída"},
	}}
	g := New(&fakeAppointments{}, orders)

	_, ok := httperr.AsDependency(g.CheckAppointmentDeletion(models.Appointment{ID: 3}))
	assert.True(t, ok)

	orders.items[0].Status = "Cancelada"
	assert.NoError(t, g.CheckAppointmentDeletion(models.Appointment{ID: 3}))
}
