package httperr

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Pending *PendingCount     `json:"pending,omitempty"`
}

type PendingCount struct {
	Appointments  int  `json:"appointments"`
	ServiceOrders int  `json:"service_orders"`
	Total         int  `json:"total"`
	Confirmable   bool `json:"confirmable"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError traduz os erros de domínio para a resposta HTTP.
// Erros de negócio sem mensagem conhecida viram 400 com o próprio código.
func FromError(c *gin.Context, err error) {
	if ve, ok := AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, HTTPError{
			Code:    "validation_failed",
			Message: "Verifique os campos destacados.",
			Fields:  ve.Fields,
		})
		return
	}

	if de, ok := AsDependency(err); ok {
		c.JSON(http.StatusConflict, HTTPError{
			Code:    "pending_dependencies",
			Message: "Existem registros pendentes vinculados.",
			Pending: &PendingCount{
				Appointments:  de.Appointments,
				ServiceOrders: de.ServiceOrders,
				Total:         de.Pending(),
				Confirmable:   de.Confirmable,
			},
		})
		return
	}

	if pw, ok := asPartial(err); ok {
		log.Printf("partial write: %v", pw)
		Write(c, http.StatusBadGateway, "partial_write", "Operação concluída parcialmente: "+pw.Failed+" não foi salvo.")
		return
	}

	if IsNotFound(err) {
		NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	if IsRemote(err) {
		log.Printf("remote error: %v", err)
		if IsConstraintViolation(err) {
			Write(c, http.StatusConflict, "constraint_violation", "O registro viola uma restrição do banco.")
			return
		}
		Write(c, http.StatusBadGateway, "remote_error", "Falha ao comunicar com o banco de dados.")
		return
	}

	var be BusinessError
	if asBusiness(err, &be) {
		BadRequest(c, be.Code, businessMessage(be.Code))
		return
	}

	log.Printf("unexpected error: %v", err)
	Internal(c, "internal_error", "Erro interno.")
}

var businessMessages = map[string]string{
	"invalid_state":                "Status não permite esta operação.",
	"client_already_exists":        "Já existe um cliente com este nome.",
	"client_not_found":             "Cliente não encontrado.",
	"appointment_cancelled":        "Agendamento cancelado não gera ordem de serviço.",
	"service_order_already_exists": "Este agendamento já possui ordem de serviço.",
	"item_not_found":               "Item não encontrado.",
	"owner_already_exists":         "A conta do responsável já foi criada.",
	"attachment_not_found":         "Ordem de serviço sem anexo.",
	"appointment_required":         "Ordem de serviço precisa de um agendamento.",
}

func businessMessage(code string) string {
	if msg, ok := businessMessages[code]; ok {
		return msg
	}
	return "Operação inválida."
}
