package serviceorder

import (
	"context"
	"io"
	"log"

	"github.com/BruksfildServices01/service-desk/internal/audit"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/storage"
	"github.com/BruksfildServices01/service-desk/internal/workspace"
)

type UploadAttachmentInput struct {
	OrderID     uint
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Attachments struct {
	ws      *workspace.Workspace
	storage storage.Provider
	audit   *audit.Dispatcher
}

func NewAttachments(ws *workspace.Workspace, storage storage.Provider, audit *audit.Dispatcher) *Attachments {
	return &Attachments{ws: ws, storage: storage, audit: audit}
}

// Upload envia o arquivo e grava pdfUrl/pdfPath na OS. O anexo anterior é
// removido depois que a OS aponta para o novo.
func (uc *Attachments) Upload(ctx context.Context, in UploadAttachmentInput) (*models.ServiceOrder, error) {
	current, err := uc.ws.ServiceOrders.Find(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = storage.ContentType(in.FileName)
	}

	key := storage.ServiceOrderKey(current.ID, in.FileName)
	res, err := uc.storage.UploadReader(ctx, in.Body, key, contentType, in.Size)
	if err != nil {
		return nil, &httperr.RemoteError{Op: "upload attachment", Err: err}
	}

	updated, err := uc.ws.ServiceOrders.Update(ctx, current.ID, func(o *models.ServiceOrder) error {
		o.PDFURL = res.URL
		o.PDFPath = res.Key
		return nil
	})
	if err != nil {
		if derr := uc.storage.Delete(ctx, res.Key); derr != nil {
			log.Printf("[service_order] rollback attachment %s: %v", res.Key, derr)
		}
		return nil, err
	}

	if current.PDFPath != "" && current.PDFPath != res.Key {
		if err := uc.storage.Delete(ctx, current.PDFPath); err != nil {
			log.Printf("[service_order] delete old attachment %s: %v", current.PDFPath, err)
		}
	}

	uc.audit.Record(ctx, "service_order_attachment_uploaded", "service_order", updated.ID, map[string]any{
		"file": in.FileName,
		"size": res.FileSize,
	})
	return &updated, nil
}

// Open devolve o conteúdo do anexo e o content type.
func (uc *Attachments) Open(ctx context.Context, orderID uint) (io.ReadCloser, string, error) {
	o, err := uc.ws.ServiceOrders.Find(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if o.PDFPath == "" {
		return nil, "", httperr.ErrBusiness("attachment_not_found")
	}

	r, ct, err := uc.storage.Get(ctx, o.PDFPath)
	if err != nil {
		return nil, "", &httperr.RemoteError{Op: "get attachment", Err: err}
	}
	return r, ct, nil
}

func (uc *Attachments) Remove(ctx context.Context, orderID uint) (*models.ServiceOrder, error) {
	current, err := uc.ws.ServiceOrders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.PDFPath == "" {
		return nil, httperr.ErrBusiness("attachment_not_found")
	}

	updated, err := uc.ws.ServiceOrders.Update(ctx, orderID, func(o *models.ServiceOrder) error {
		o.PDFURL = ""
		o.PDFPath = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.storage.Delete(ctx, current.PDFPath); err != nil {
		log.Printf("[service_order] delete attachment %s: %v", current.PDFPath, err)
	}

	uc.audit.Record(ctx, "service_order_attachment_removed", "service_order", orderID, nil)
	return &updated, nil
}
