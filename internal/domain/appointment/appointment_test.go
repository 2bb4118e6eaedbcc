package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-desk/internal/form"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	ap := models.Appointment{Status: string(StatusInProgress)}
	require.NoError(t, Complete(&ap))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	assert.True(t, httperr.IsBusiness(Cancel(&ap), "invalid_state"))

	require.NoError(t, Reopen(&ap))
	require.NoError(t, Cancel(&ap))
	assert.Equal(t, string(StatusCancelled), ap.Status)

	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}

func TestNewClientFlowRequiresContact(t *testing.T) {
	s := NewForm(models.Appointment{}, true)
	s.Set(FieldClientName, "Ana Costa").Set(FieldService, "Revisão").
		Set(FieldDate, "2024-10-20").Set(FieldTime, "09:00")

	ve, ok := httperr.AsValidation(s.Validate())
	require.True(t, ok)
	assert.Equal(t, form.MsgRequired, ve.Fields[FieldPhone])
	assert.Equal(t, form.MsgRequired, ve.Fields[FieldEmail])

	SetNewClient(s, false)
	assert.NoError(t, s.Validate())
}

func TestApply(t *testing.T) {
	s := NewForm(models.Appointment{}, false)
	s.Set(FieldClientName, " Ana ").Set(FieldPhone, "11999998888").Set(FieldService, "Revisão").
		Set(FieldDate, "2024-10-20").Set(FieldTime, "09:00")

	var ap models.Appointment
	Apply(s, &ap)
	assert.Equal(t, "Ana", ap.ClientName)
	assert.Equal(t, "(11) 99999-8888", ap.Phone)
	assert.Equal(t, string(StatusInProgress), ap.Status)
}

func TestFilter(t *testing.T) {
	aps := []models.Appointment{
		{ID: 1, ClientID: 1, ClientName: "Ana", Service: "Revisão", Date: "2024-10-21", Time: "09:00", Status: "Em Andamento"},
		{ID: 2, ClientID: 2, ClientName: "Bruno", Service: "Troca de óleo", Date: "2024-10-20", Time: "14:00", Status: "Concluído", ServiceOrderGenerated: true},
		{ID: 3, ClientID: 1, ClientName: "Ana", Service: "Alinhamento", Date: "2024-10-20", Time: "08:30", Status: "Cancelado"},
	}

	ids := func(list []models.Appointment) []uint {
		var out []uint
		for _, ap := range list {
			out = append(out, ap.ID)
		}
		return out
	}

	assert.Equal(t, []uint{3, 2, 1}, ids(Filter{}.Apply(aps)))
	assert.Equal(t, []uint{1, 2, 3}, ids(Filter{Desc: true}.Apply(aps)))
	assert.Equal(t, []uint{3, 1}, ids(Filter{ClientID: 1}.Apply(aps)))
	assert.Equal(t, []uint{3, 2}, ids(Filter{To: "2024-10-20"}.Apply(aps)))
	assert.Equal(t, []uint{1}, ids(Filter{From: "2024-10-21"}.Apply(aps)))
	assert.Equal(t, []uint{1}, ids(Filter{NeedsOrder: true}.Apply(aps)))
	assert.Equal(t, []uint{2}, ids(Filter{Query: "oleo"}.Apply(aps)))
	assert.Equal(t, []uint{2}, ids(Filter{Status: StatusCompleted}.Apply(aps)))
}

func TestTransition(t *testing.T) {
	ap := models.Appointment{Status: string(StatusInProgress)}
	require.NoError(t, Transition(&ap, StatusInProgress))
	require.NoError(t, Transition(&ap, StatusCancelled))
	assert.True(t, httperr.IsBusiness(Transition(&ap, StatusCompleted), "invalid_state"))
	require.NoError(t, Transition(&ap, StatusInProgress))
	assert.True(t, httperr.IsBusiness(Transition(&ap, "Arquivado"), "invalid_state"))
}
