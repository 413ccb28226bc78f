package ports

import "context"

// EmailMessage correo saliente ya renderizado en HTML.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// EmailDelivery resultado devuelto por el proveedor.
type EmailDelivery struct {
	ID       string // id del proveedor (vacío si no lo informa, ej. SMTP)
	Provider string
}

// EmailSender puerto de salida hacia el proveedor de correo. Un intento, sin reintentos.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (*EmailDelivery, error)
}
