package appointment

import (
	"context"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	clientdomain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// ClientID escolhe um cliente existente; zero procura pelo nome.
	ClientID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Service string
	Date    string
	Time    string
	Notes   string
}

type CreateAppointmentOutput struct {
	Appointment   models.Appointment
	Client        models.Client
	ClientCreated bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	ws    *workspace.Workspace
	audit *audit.Dispatcher
}

func NewCreateAppointment(ws *workspace.Workspace, audit *audit.Dispatcher) *CreateAppointment {
	return &CreateAppointment{ws: ws, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	// --------------------------------------------------
	// 1️⃣ Cliente existente ou novo
	// --------------------------------------------------
	var (
		client    models.Client
		newClient bool
	)
	switch {
	case in.ClientID != 0:
		c, err := uc.ws.Clients.Find(ctx, in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		client = c
	default:
		if c, ok := clientdomain.FindByName(uc.ws.Clients.List(), in.ClientName); ok {
			client = c
		} else {
			newClient = true
		}
	}

	if !newClient {
		in.ClientName = client.Name
		if in.ClientPhone == "" {
			in.ClientPhone = client.Phone
		}
		if in.ClientEmail == "" {
			in.ClientEmail = client.Email
		}
	}

	// --------------------------------------------------
	// 2️⃣ Validação (telefone e e-mail obrigatórios para cliente novo)
	// --------------------------------------------------
	s := domain.NewForm(models.Appointment{}, newClient)
	s.Set(domain.FieldClientName, in.ClientName).
		Set(domain.FieldPhone, in.ClientPhone).
		Set(domain.FieldEmail, in.ClientEmail).
		Set(domain.FieldService, in.Service).
		Set(domain.FieldDate, in.Date).
		Set(domain.FieldTime, in.Time).
		Set(domain.FieldNotes, in.Notes)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Cliente novo é gravado antes do agendamento
	// --------------------------------------------------
	if newClient {
		cs := clientdomain.NewForm(models.Client{})
		cs.Set(clientdomain.FieldName, in.ClientName).
			Set(clientdomain.FieldPhone, in.ClientPhone).
			Set(clientdomain.FieldEmail, in.ClientEmail)

		var c models.Client
		clientdomain.Apply(cs, &c)

		created, err := uc.ws.Clients.Create(ctx, c)
		if err != nil {
			return nil, err
		}
		client = created

		uc.audit.Record(ctx, "client_created", "client", client.ID, map[string]any{
			"name":   client.Name,
			"source": "appointment",
		})
	}

	// --------------------------------------------------
	// 4️⃣ Agendamento
	// --------------------------------------------------
	var ap models.Appointment
	domain.Apply(s, &ap)
	ap.ClientID = client.ID
	ap.Status = string(domain.InitialStatus())
	ap.ServiceOrderGenerated = false

	created, err := uc.ws.Appointments.Create(ctx, ap)
	if err != nil {
		if newClient {
			return nil, &httperr.PartialWriteError{Completed: "client", Failed: "appointment", Err: err}
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Record(ctx, "appointment_created", "appointment", created.ID, map[string]any{
		"client_id": client.ID,
		"date":      created.Date,
		"time":      created.Time,
	})

	return &CreateAppointmentOutput{
		Appointment:   created,
		Client:        client,
		ClientCreated: newClient,
	}, nil
}
