package email

import (
	"context"
	"errors"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
)

var _ ports.EmailSender = DisabledSender{}

// ErrEmailDisabled EMAIL_PROVIDER=none.
var ErrEmailDisabled = errors.New("email: proveedor deshabilitado (EMAIL_PROVIDER=none)")

// DisabledSender rechaza todos los envíos.
type DisabledSender struct{}

// Send siempre falla con ErrEmailDisabled.
func (DisabledSender) Send(context.Context, ports.EmailMessage) (*ports.EmailDelivery, error) {
	return nil, ErrEmailDisabled
}
