package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/dto"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/httpresp"
	uc "github.com/BruksfildServices01/service-desk/internal/usecase/appointment"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	display dto.Display

	list     *uc.ListAppointments
	create   *uc.CreateAppointment
	update   *uc.UpdateAppointment
	complete *uc.CompleteAppointment
	cancel   *uc.CancelAppointment
	delete   *uc.DeleteAppointment

	clients *ClientHandler
}

func NewAppointmentHandler(ws *workspace.Workspace, audit *audit.Dispatcher, display dto.Display) *AppointmentHandler {
	return &AppointmentHandler{
		display:  display,
		list:     uc.NewListAppointments(ws),
		create:   uc.NewCreateAppointment(ws, audit),
		update:   uc.NewUpdateAppointment(ws, audit),
		complete: uc.NewCompleteAppointment(ws, audit),
		cancel:   uc.NewCancelAppointment(ws, audit),
		delete:   uc.NewDeleteAppointment(ws, audit),
		clients:  NewClientHandler(ws, audit, display),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Notes       string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientName  *string `json:"client_name"`
	ClientPhone *string `json:"client_phone"`
	ClientEmail *string `json:"client_email"`
	Service     *string `json:"service"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

func (h *AppointmentHandler) view(v uc.AppointmentView) dto.AppointmentDTO {
	return dto.NewAppointmentDTO(v.Appointment, string(v.OrderState), h.display)
}

func (h *AppointmentHandler) byID(c *gin.Context, id uint) {
	v, ok := h.list.Get(id)
	if !ok {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}
	httpresp.OK(c, h.view(v))
}

// ======================================================
// LIST
// ======================================================
func (h *AppointmentHandler) List(c *gin.Context) {
	f := domain.Filter{
		Status:     domain.Status(c.Query("status")),
		ClientID:   queryUint(c, "client_id"),
		From:       queryDate(c, "from", h.display.Locale),
		To:         queryDate(c, "to", h.display.Locale),
		Query:      strings.TrimSpace(c.Query("query")),
		NeedsOrder: queryBool(c, "needs_order"),
		Desc:       c.Query("order") == "desc",
	}

	views := h.list.Execute(f)

	out := make([]dto.AppointmentDTO, 0, len(views))
	for _, v := range views {
		out = append(out, h.view(v))
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.byID(c, id)
}

// ======================================================
// CREATE
// ======================================================
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), uc.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	v, _ := h.list.Get(out.Appointment.ID)
	if v.ID == 0 {
		v = uc.AppointmentView{Appointment: out.Appointment}
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":    h.view(v),
		"client":         h.clients.view(out.Client),
		"client_created": out.ClientCreated,
	})
}

// ======================================================
// UPDATE
// ======================================================
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.update.Execute(c.Request.Context(), uc.UpdateAppointmentInput{
		ID:          id,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	v, _ := h.list.Get(id)
	if v.ID == 0 {
		v = uc.AppointmentView{Appointment: out.Appointment}
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": h.view(v),
		"changed":     out.Changed,
	})
}

// ======================================================
// STATUS
// ======================================================
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := h.complete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.byID(c, id)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.byID(c, id)
}

// ======================================================
// DELETE
// ======================================================
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// SUGGEST SERVICES
// ======================================================
func (h *AppointmentHandler) SuggestServices(c *gin.Context) {
	names := h.list.SuggestServices(c.Query("q"), queryLimit(c, defaultSuggestLimit, maxSuggestLimit))
	httpresp.List(c, names)
}
