package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"gopkg.in/gomail.v2"
)

var _ ports.EmailSender = (*SMTPSender)(nil)

const providerSMTP = "smtp"

// Dialer lo cumple *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender adaptador SMTP basado en gomail.
type SMTPSender struct {
	dialer Dialer
	from   string
	domain string // parte derecha del Message-ID
}

// NewSMTPSender construye el adaptador con un gomail.Dialer.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return NewSMTPSenderWithDialer(gomail.NewDialer(host, port, user, password), from, host)
}

// NewSMTPSenderWithDialer permite inyectar el dialer (tests).
func NewSMTPSenderWithDialer(d Dialer, from, domain string) *SMTPSender {
	if domain == "" {
		domain = "localhost"
	}
	return &SMTPSender{dialer: d, from: from, domain: domain}
}

// Send arma el mensaje HTML y lo entrega al servidor SMTP. gomail no recibe ctx;
// si ctx ya está cancelado no se intenta el envío.
func (s *SMTPSender) Send(ctx context.Context, msg ports.EmailMessage) (*ports.EmailDelivery, error) {
	if s.from == "" {
		return nil, fmt.Errorf("smtp: EMAIL_FROM no configurado")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain)
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp: enviar: %w", err)
	}
	return &ports.EmailDelivery{ID: messageID, Provider: providerSMTP}, nil
}
