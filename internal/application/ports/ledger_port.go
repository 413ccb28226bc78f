package ports

import (
	"context"

	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta fn dentro de una transacción con repos de clientes y pagos
// atados a ella. Si fn retorna error se hace rollback.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
