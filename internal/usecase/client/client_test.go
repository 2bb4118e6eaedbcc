package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace/workspacetest"
)

func strPtr(s string) *string { return &s }

func TestCreateClientMasksPhone(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	c, err := NewCreateClient(fx.WS, nil).Execute(ctx, CreateClientInput{
		Name:  "Ana Costa",
		Email: "Ana@Email.com",
		Phone: "11999998888",
	})
	require.NoError(t, err)
	assert.Equal(t, "(11) 99999-8888", c.Phone)
	assert.Equal(t, "ana@email.com", c.Email)
	assert.Equal(t, string(domain.StatusActive), c.Status)

	list := NewListClients(fx.WS).Execute(domain.Filter{})
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateClientRejectsDuplicatesAndInvalidFields(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()
	uc := NewCreateClient(fx.WS, nil)

	_, err := uc.Execute(ctx, CreateClientInput{Name: "Ana"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateClientInput{Name: "ANA"})
	assert.True(t, httperr.IsBusiness(err, "client_already_exists"))

	_, err = uc.Execute(ctx, CreateClientInput{Name: "", Email: "nope"})
	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, domain.FieldName)
	assert.Contains(t, ve.Fields, domain.FieldEmail)

	assert.Len(t, fx.WS.Clients.List(), 1)
}

func TestUpdateClientWithoutChangesDoesNotWrite(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	c, err := NewCreateClient(fx.WS, nil).Execute(ctx, CreateClientInput{Name: "Ana", Phone: "11999998888"})
	require.NoError(t, err)

	uc := NewUpdateClient(fx.WS, nil)
	out, err := uc.Execute(ctx, UpdateClientInput{ID: c.ID, Name: strPtr("Ana"), Phone: strPtr("11999998888")})
	require.NoError(t, err)
	assert.Empty(t, out.Changed)

	var stored models.Client
	require.NoError(t, fx.DB.First(&stored, c.ID).Error)
	assert.Equal(t, c.UpdatedAt.Unix(), stored.UpdatedAt.Unix())

	out, err = uc.Execute(ctx, UpdateClientInput{ID: c.ID, Address: strPtr("Rua A, 10")})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FieldAddress}, out.Changed)
	assert.Equal(t, "Rua A, 10", out.Client.Address)

	_, err = uc.Execute(ctx, UpdateClientInput{ID: 999, Name: strPtr("X")})
	assert.True(t, httperr.IsNotFound(err))
}

func TestToggleStatus(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	c, err := NewCreateClient(fx.WS, nil).Execute(ctx, CreateClientInput{Name: "Ana"})
	require.NoError(t, err)

	got, err := NewToggleClientStatus(fx.WS, nil).Execute(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInactive), got.Status)

	assert.Empty(t, NewListClients(fx.WS).Suggest("an", 5))
}

func TestDeleteClientBlockedByPendingAppointment(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()

	c, err := NewCreateClient(fx.WS, nil).Execute(ctx, CreateClientInput{Name: "Ana"})
	require.NoError(t, err)

	ap, err := fx.WS.Appointments.Create(ctx, models.Appointment{
		ClientID: c.ID, ClientName: "Ana", Service: "Revisão",
		Date: "2024-10-20", Time: "09:00", Status: "Em Andamento",
	})
	require.NoError(t, err)

	uc := NewDeleteClient(fx.WS, nil)
	dep, ok := httperr.AsDependency(uc.Execute(ctx, c.ID))
	require.True(t, ok)
	assert.Equal(t, 1, dep.Appointments)

	apps, orders := NewListClients(fx.WS).Pending(c.ID)
	assert.Equal(t, 1, apps)
	assert.Equal(t, 0, orders)

	_, err = fx.WS.Appointments.Update(ctx, ap.ID, func(a *models.Appointment) error {
		a.Status = "Cancelado"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, uc.Execute(ctx, c.ID))
	assert.Empty(t, fx.WS.Clients.List())
}

func TestSuggestRanksPrefixFirst(t *testing.T) {
	fx := workspacetest.New(t)
	ctx := context.Background()
	uc := NewCreateClient(fx.WS, nil)

	for _, n := range []string{"Mariana", "Ana", "Anabela"} {
		_, err := uc.Execute(ctx, CreateClientInput{Name: n})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Ana", "Anabela", "Mariana"}, NewListClients(fx.WS).Suggest("ana", 10))
}
