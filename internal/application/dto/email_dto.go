package dto

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// SendEmailRequest body para POST /api/email/send-email. Body es texto plano;
// los saltos de línea se envían como <br/>.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate exige un destinatario válido y un asunto.
func (r *SendEmailRequest) Validate() error {
	r.To = strings.TrimSpace(r.To)
	r.Subject = strings.TrimSpace(r.Subject)
	if r.To == "" || r.Subject == "" {
		return invalid("to and subject are required")
	}
	if !govalidator.IsEmail(r.To) {
		return invalid("to %q is not a valid email", r.To)
	}
	return nil
}

// SendTemplateRequest body para POST /api/email/send-template.
type SendTemplateRequest struct {
	ClientID   int64 `json:"clientId"`
	TemplateID int   `json:"templateId"`
}

// Validate exige clientId y templateId.
func (r *SendTemplateRequest) Validate() error {
	if r.ClientID <= 0 || r.TemplateID <= 0 {
		return invalid("clientId and templateId are required")
	}
	return nil
}

// EmailDeliveryDTO resultado de un envío aceptado por el proveedor.
type EmailDeliveryDTO struct {
	ID       string `json:"id,omitempty"`
	Provider string `json:"provider"`
	To       string `json:"to"`
}

// SendEmailResponse respuesta de los endpoints de correo.
type SendEmailResponse struct {
	Success bool              `json:"success"`
	Result  *EmailDeliveryDTO `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// EmailTemplateResponse plantilla disponible.
type EmailTemplateResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
