package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/dto"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/httpresp"
	"github.com/BruksfildServices01/service-desk/internal/models"
	uc "github.com/BruksfildServices01/service-desk/internal/usecase/client"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type ClientHandler struct {
	ws      *workspace.Workspace
	display dto.Display

	list   *uc.ListClients
	create *uc.CreateClient
	update *uc.UpdateClient
	toggle *uc.ToggleClientStatus
	delete *uc.DeleteClient
}

func NewClientHandler(ws *workspace.Workspace, audit *audit.Dispatcher, display dto.Display) *ClientHandler {
	return &ClientHandler{
		ws:      ws,
		display: display,
		list:    uc.NewListClients(ws),
		create:  uc.NewCreateClient(ws, audit),
		update:  uc.NewUpdateClient(ws, audit),
		toggle:  uc.NewToggleClientStatus(ws, audit),
		delete:  uc.NewDeleteClient(ws, audit),
	}
}

type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}

func (h *ClientHandler) view(c models.Client) dto.ClientDTO {
	appointments, orders := h.list.Pending(c.ID)
	return dto.NewClientDTO(c, h.display, appointments, orders)
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	sort, order := c.Query("sort"), c.Query("order")
	if sort == "" {
		// mais recentes primeiro
		sort = string(domain.SortByCreatedAt)
		if order == "" {
			order = "desc"
		}
	}

	f := domain.Filter{
		Status: domain.Status(c.Query("status")),
		Query:  strings.TrimSpace(c.Query("query")),
		Sort:   domain.SortField(sort),
		Desc:   order == "desc",
	}

	clients := h.list.Execute(f)

	out := make([]dto.ClientDTO, 0, len(clients))
	for _, cl := range clients {
		out = append(out, h.view(cl))
	}

	httpresp.List(c, out)
}

// ======================================================
// GET CLIENT
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cl, err := h.ws.Clients.Find(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(cl))
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := h.create.Execute(c.Request.Context(), uc.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, h.view(*cl))
}

// ======================================================
// UPDATE CLIENT
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.update.Execute(c.Request.Context(), uc.UpdateClientInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":  h.view(out.Client),
		"changed": out.Changed,
	})
}

// ======================================================
// TOGGLE STATUS
// ======================================================
func (h *ClientHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cl, err := h.toggle.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*cl))
}

// ======================================================
// DELETE CLIENT
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
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
// SUGGEST (autocomplete de nomes)
// ======================================================
func (h *ClientHandler) Suggest(c *gin.Context) {
	names := h.list.Suggest(c.Query("q"), queryLimit(c, defaultSuggestLimit, maxSuggestLimit))
	httpresp.List(c, names)
}
