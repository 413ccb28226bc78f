package ports

import (
	"context"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
)

// StatementData datos para el estado de cuenta de un cliente.
type StatementData struct {
	BusinessName string
	Client       *entity.Client
	Payments     []*entity.Payment // fecha descendente
	Metrics      ledger.Metrics
	GeneratedAt  time.Time
}

// StatementPDFGenerator genera el PDF del estado de cuenta.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, data StatementData) ([]byte, error)
}
