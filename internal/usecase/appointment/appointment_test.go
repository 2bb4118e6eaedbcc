package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/domain/linker"
	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
	"github.com/BruksfildServices01/service-desk/internal/workspace/workspacetest"
)

func strPtr(s string) *string { return &s }

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientName:  "Ana Costa",
		ClientPhone: "11999998888",
		ClientEmail: "ana@email.com",
		Service:     "Revisão",
		Date:        "2024-10-20",
		Time:        "09:00",
	}
}

func TestCreateWithNewClientCreatesClientFirst(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	out, err := NewCreateAppointment(fx.WS, nil).Execute(ctx, baseInput())
	require.NoError(t, err)
	assert.True(t, out.ClientCreated)
	assert.Equal(t, out.Client.ID, out.Appointment.ClientID)
	assert.Equal(t, "(11) 99999-8888", out.Appointment.Phone)
	assert.Equal(t, string(domain.StatusInProgress), out.Appointment.Status)
	assert.False(t, out.Appointment.ServiceOrderGenerated)

	require.Len(t, fx.WS.Clients.List(), 1)
	require.Len(t, fx.WS.Appointments.List(), 1)
}

func TestCreateMatchesExistingClientCaseInsensitively(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	c, err := fx.WS.Clients.Create(ctx, models.Client{Name: "Ana Costa", Phone: "(11) 99999-8888", Status: "Ativo"})
	require.NoError(t, err)

	in := baseInput()
	in.ClientName = "ana costa"
	in.ClientPhone = ""
	in.ClientEmail = ""

	out, err := NewCreateAppointment(fx.WS, nil).Execute(ctx, in)
	require.NoError(t, err)
	assert.False(t, out.ClientCreated)
	assert.Equal(t, c.ID, out.Appointment.ClientID)
	assert.Equal(t, "Ana Costa", out.Appointment.ClientName)
	assert.Equal(t, "(11) 99999-8888", out.Appointment.Phone)
	assert.Len(t, fx.WS.Clients.List(), 1)
}

func TestNewClientFlowRequiresPhoneAndEmail(t *testing.T) {
	fx := workspacetest.New(t)

	in := baseInput()
	in.ClientPhone = ""
	in.ClientEmail = ""

	_, err := NewCreateAppointment(fx.WS, nil).Execute(context.Background(), in)
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, form.MsgRequired, ve.Fields[domain.FieldPhone])
	assert.Equal(t, form.MsgRequired, ve.Fields[domain.FieldEmail])
	assert.Empty(t, fx.WS.Clients.List())
}

func TestAppointmentFailureAfterClientCreateIsPartial(t *testing.T) {
	var flaky *workspacetest.Flaky[models.Appointment]
	fx := workspacetest.New(t, func(s *workspace.Stores) {
		flaky = workspacetest.NewFlaky(s.Appointments)
		s.Appointments = flaky
	})
	flaky.FailInsert.Store(true)

	_, err := NewCreateAppointment(fx.WS, nil).Execute(context.Background(), baseInput())

	var pw *httperr.PartialWriteError
	require.ErrorAs(t, err, &pw)
	assert.Equal(t, "client", pw.Completed)
	assert.ErrorIs(t, err, workspacetest.ErrOffline)

	assert.Len(t, fx.WS.Clients.List(), 1)
	assert.Empty(t, fx.WS.Appointments.List())
}

func TestUpdateTracksChanges(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	out, err := NewCreateAppointment(fx.WS, nil).Execute(ctx, baseInput())
	require.NoError(t, err)
	id := out.Appointment.ID

	uc := NewUpdateAppointment(fx.WS, nil)
	res, err := uc.Execute(ctx, UpdateAppointmentInput{ID: id, Service: strPtr("Revisão"), ClientPhone: strPtr("11999998888")})
	require.NoError(t, err)
	assert.Empty(t, res.Changed)

	res, err = uc.Execute(ctx, UpdateAppointmentInput{ID: id, Time: strPtr("10:30"), Status: strPtr("Concluído")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.FieldTime, domain.FieldStatus}, res.Changed)
	assert.Equal(t, "10:30", res.Appointment.Time)
	assert.Equal(t, "Concluído", res.Appointment.Status)

	_, err = uc.Execute(ctx, UpdateAppointmentInput{ID: id, Status: strPtr("Cancelado")})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(ctx, UpdateAppointmentInput{ID: id, Date: strPtr("20/10/2024")})
	_, ok := httperr.AsValidation(err)
	assert.True(t, ok)
}

func TestCompleteAndCancel(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	out, err := NewCreateAppointment(fx.WS, nil).Execute(ctx, baseInput())
	require.NoError(t, err)

	ap, err := NewCancelAppointment(fx.WS, nil).Execute(ctx, out.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelado", ap.Status)

	_, err = NewCompleteAppointment(fx.WS, nil).Execute(ctx, out.Appointment.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewCompleteAppointment(fx.WS, nil).Execute(ctx, 999)
	assert.True(t, httperr.IsNotFound(err))
}

func TestDeleteBlockedWhileOrderIsLive(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	out, err := NewCreateAppointment(fx.WS, nil).Execute(ctx, baseInput())
	require.NoError(t, err)
	apID := out.Appointment.ID

	order, err := fx.WS.ServiceOrders.Create(ctx, models.ServiceOrder{AppointmentID: &apID, Name: "Revisão", Status: "Pendente"})
	require.NoError(t, err)

	uc := NewDeleteAppointment(fx.WS, nil)
	_, ok := httperr.AsDependency(uc.Execute(ctx, apID))
	assert.True(t, ok)

	views := NewListAppointments(fx.WS).Execute(domain.Filter{})
	require.Len(t, views, 1)
	assert.True(t, views[0].ServiceOrderGenerated, "flag derived from orders")
	assert.Equal(t, linker.OrderPending, views[0].OrderState)

	_, err = fx.WS.ServiceOrders.Update(ctx, order.ID, func(o *models.ServiceOrder) error {
		o.Status = "Cancelada"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, uc.Execute(ctx, apID))
	assert.Empty(t, fx.WS.Appointments.List())
}

func TestSuggestServices(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	_, err := fx.WS.Catalog.Create(ctx, models.CatalogService{Name: "Troca de óleo", Active: true})
	require.NoError(t, err)
	_, err = NewCreateAppointment(fx.WS, nil).Execute(ctx, baseInput())
	require.NoError(t, err)

	uc := NewListAppointments(fx.WS)
	assert.Equal(t, []string{"Troca de óleo"}, uc.SuggestServices("oleo", 5))
	assert.Equal(t, []string{"Revisão"}, uc.SuggestServices("REVI", 5))
}
