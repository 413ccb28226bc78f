// Package mailing orquesta el envío de correos a través del puerto EmailSender.
package mailing

import (
	"context"
	"fmt"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	domainmail "github.com/taxdesk/clientdesk-api/internal/domain/mailing"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

// EmailUseCase envía correos libres y de plantilla. Un intento por llamada, sin reintentos.
type EmailUseCase struct {
	sender  ports.EmailSender
	clients repository.ClientRepository
	now     func() time.Time
}

// NewEmailUseCase construye el caso de uso.
func NewEmailUseCase(sender ports.EmailSender, clients repository.ClientRepository) *EmailUseCase {
	return &EmailUseCase{sender: sender, clients: clients, now: time.Now}
}

// WithClock reemplaza el reloj (año fiscal de las plantillas).
func (uc *EmailUseCase) WithClock(now func() time.Time) *EmailUseCase {
	uc.now = now
	return uc
}

// Send envía body (texto plano) como HTML con <br/> en los saltos de línea.
func (uc *EmailUseCase) Send(ctx context.Context, in dto.SendEmailRequest) (*dto.EmailDeliveryDTO, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return uc.deliver(ctx, ports.EmailMessage{
		To:      in.To,
		Subject: in.Subject,
		HTML:    domainmail.PlainToHTML(in.Body),
	})
}

// Templates lista las plantillas disponibles.
func (uc *EmailUseCase) Templates() []dto.EmailTemplateResponse {
	out := make([]dto.EmailTemplateResponse, 0, len(domainmail.Templates))
	for _, t := range domainmail.Templates {
		out = append(out, dto.EmailTemplateResponse{ID: t.ID, Name: t.Name, Subject: t.Subject, Body: t.Body})
	}
	return out
}

// SendTemplate llena la plantilla con los datos del cliente y la envía a su email.
func (uc *EmailUseCase) SendTemplate(ctx context.Context, in dto.SendTemplateRequest) (*dto.EmailDeliveryDTO, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tpl, ok := domainmail.FindTemplate(in.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: template %d", domain.ErrNotFound, in.TemplateID)
	}
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: get client: %w", domain.ErrPersistence, err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %d", domain.ErrNotFound, in.ClientID)
	}
	subject, body := tpl.Fill(client.Name, uc.now())
	return uc.deliver(ctx, ports.EmailMessage{
		To:      client.Email,
		Subject: subject,
		HTML:    domainmail.PlainToHTML(body),
	})
}

func (uc *EmailUseCase) deliver(ctx context.Context, msg ports.EmailMessage) (*dto.EmailDeliveryDTO, error) {
	res, err := uc.sender.Send(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send email: %w", err)
	}
	return &dto.EmailDeliveryDTO{ID: res.ID, Provider: res.Provider, To: msg.To}, nil
}
