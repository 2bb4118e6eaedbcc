package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/domain/guard"
	"github.com/BruksfildServices01/service-desk/internal/domain/linker"
	domain "github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/dto"
	"github.com/BruksfildServices01/service-desk/internal/export"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/httpresp"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/storage"
	uc "github.com/BruksfildServices01/service-desk/internal/usecase/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

const maxAttachmentSize = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type ServiceOrderHandler struct {
	display dto.Display

	list        *uc.ListServiceOrders
	create      *uc.CreateServiceOrder
	update      *uc.UpdateServiceOrder
	items       *uc.ManageItems
	delete      *uc.DeleteServiceOrder
	attachments *uc.Attachments
	export      *uc.Export
	reconcile   *uc.Reconcile
}

func NewServiceOrderHandler(
	ws *workspace.Workspace,
	files storage.Provider,
	audit *audit.Dispatcher,
	exporter *uc.Export,
	display dto.Display,
) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		display:     display,
		list:        uc.NewListServiceOrders(ws),
		create:      uc.NewCreateServiceOrder(ws, audit),
		update:      uc.NewUpdateServiceOrder(ws, audit),
		items:       uc.NewManageItems(ws, audit),
		delete:      uc.NewDeleteServiceOrder(ws, files, audit),
		attachments: uc.NewAttachments(ws, files, audit),
		export:      exporter,
		reconcile:   uc.NewReconcile(ws),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ItemRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

type CreateServiceOrderRequest struct {
	AppointmentID uint          `json:"appointment_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Items         []ItemRequest `json:"items"`
}

type UpdateServiceOrderRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	AppointmentID *uint   `json:"appointment_id"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceOrderHandler) filter(c *gin.Context) uc.ListServiceOrdersInput {
	sort, order := c.Query("sort"), c.Query("order")
	if sort == "" {
		sort = domain.SortCreatedAt
		if order == "" {
			order = "desc"
		}
	}

	return uc.ListServiceOrdersInput{
		Filter: domain.Filter{
			Status:        domain.Status(c.Query("status")),
			AppointmentID: queryUint(c, "appointment_id"),
			Query:         strings.TrimSpace(c.Query("query")),
			Sort:          sort,
			Desc:          order == "desc",
		},
		ClientID: queryUint(c, "client_id"),
	}
}

// view monta o DTO a partir da listagem, que já traz cliente e se pode excluir.
func (h *ServiceOrderHandler) view(o models.ServiceOrder) dto.ServiceOrderDTO {
	for _, v := range h.list.Execute(uc.ListServiceOrdersInput{}) {
		if v.ID == o.ID {
			return dto.NewServiceOrderDTO(o, v.ClientName, v.Deletable, h.display)
		}
	}
	return dto.NewServiceOrderDTO(o, "", guard.CanDeleteServiceOrder(o), h.display)
}

// ======================================================
// LIST / GET
// ======================================================
func (h *ServiceOrderHandler) List(c *gin.Context) {
	views := h.list.Execute(h.filter(c))

	out := make([]dto.ServiceOrderDTO, 0, len(views))
	for _, v := range views {
		out = append(out, dto.NewServiceOrderDTO(v.ServiceOrder, v.ClientName, v.Deletable, h.display))
	}

	httpresp.List(c, out)
}

func (h *ServiceOrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

// ======================================================
// CREATE
// ======================================================
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var req CreateServiceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]uc.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, uc.ItemInput{Description: it.Description, Value: it.Value})
	}

	o, err := h.create.Execute(c.Request.Context(), uc.CreateServiceOrderInput{
		AppointmentID: req.AppointmentID,
		Name:          req.Name,
		Description:   req.Description,
		Items:         items,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, h.view(*o))
}

// ======================================================
// UPDATE
// ======================================================
func (h *ServiceOrderHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.update.Execute(c.Request.Context(), uc.UpdateServiceOrderInput{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Status:        req.Status,
		AppointmentID: req.AppointmentID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

// ======================================================
// ITEMS
// ======================================================
func (h *ServiceOrderHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.items.Add(c.Request.Context(), id, req.Description, req.Value)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, h.view(*o))
}

func (h *ServiceOrderHandler) EditItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	var req ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.items.Edit(c.Request.Context(), id, itemID, req.Description, req.Value)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

func (h *ServiceOrderHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	o, err := h.items.Remove(c.Request.Context(), id, itemID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

// ======================================================
// DELETE
// ======================================================

// Delete exige ?confirm=true para ordens pendentes; sem isso responde 409
// com confirmable=true.
func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id, queryBool(c, "confirm")); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// ATTACHMENT
// ======================================================
func (h *ServiceOrderHandler) UploadAttachment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Envie o arquivo no campo 'file'.")
		return
	}
	if fh.Size > maxAttachmentSize {
		httperr.BadRequest(c, "file_too_large", "Arquivo maior que 10 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Não foi possível ler o arquivo.")
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.ContentType(fh.Filename)
	}

	o, err := h.attachments.Upload(c.Request.Context(), uc.UploadAttachmentInput{
		OrderID:     id,
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

func (h *ServiceOrderHandler) DownloadAttachment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	r, contentType, err := h.attachments.Open(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer r.Close()

	c.Status(http.StatusOK)
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, r); err != nil {
		_ = c.Error(err)
	}
}

func (h *ServiceOrderHandler) RemoveAttachment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.attachments.Remove(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, h.view(*o))
}

// ======================================================
// EXPORT
// ======================================================
func (h *ServiceOrderHandler) ExportDocx(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	body, name, err := h.export.Docx(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Attachment(c, name, export.DocxContentType, body)
}

// ExportXlsx usa os mesmos filtros da listagem.
func (h *ServiceOrderHandler) ExportXlsx(c *gin.Context) {
	views := h.list.Execute(h.filter(c))

	orders := make([]models.ServiceOrder, 0, len(views))
	for _, v := range views {
		orders = append(orders, v.ServiceOrder)
	}

	body, err := h.export.Xlsx(c.Request.Context(), orders)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Attachment(c, "ordens-servico.xlsx", export.XlsxContentType, body)
}

// ======================================================
// RECONCILE
// ======================================================
func (h *ServiceOrderHandler) Reconcile(c *gin.Context) {
	repairs, err := h.reconcile.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if repairs == nil {
		repairs = []linker.Repair{}
	}

	c.JSON(http.StatusOK, gin.H{
		"repairs": repairs,
		"total":   len(repairs),
	})
}
