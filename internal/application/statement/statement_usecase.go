// Package statement genera el estado de cuenta (PDF) de un cliente.
package statement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

// StatementUseCase arma los datos del estado de cuenta y delega el render al generador.
type StatementUseCase struct {
	clients      repository.ClientRepository
	payments     repository.PaymentRepository
	generator    ports.StatementPDFGenerator
	businessName string
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(
	clients repository.ClientRepository,
	payments repository.PaymentRepository,
	generator ports.StatementPDFGenerator,
	businessName string,
) *StatementUseCase {
	return &StatementUseCase{clients: clients, payments: payments, generator: generator, businessName: businessName}
}

// DownloadStatementPDF devuelve (pdfBytes, filename). domain.ErrNotFound si el cliente no existe.
func (uc *StatementUseCase) DownloadStatementPDF(ctx context.Context, clientID int64) ([]byte, string, error) {
	if clientID <= 0 {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: statement: get client: %w", domain.ErrPersistence, err)
	}
	if client == nil {
		return nil, "", fmt.Errorf("%w: client %d", domain.ErrNotFound, clientID)
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{ClientID: clientID})
	if err != nil {
		return nil, "", fmt.Errorf("%w: statement: list payments: %w", domain.ErrPersistence, err)
	}

	now := time.Now()
	pdf, err := uc.generator.GenerateStatementPDF(ctx, ports.StatementData{
		BusinessName: uc.businessName,
		Client:       client,
		Payments:     payments,
		Metrics:      ledger.Compute(payments),
		GeneratedAt:  now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("statement: generate pdf: %w", err)
	}
	return pdf, filename(client.ID, client.Name, now), nil
}

// filename ej: "statement-12-ana-lopez-20260315.pdf".
func filename(id int64, name string, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, strings.TrimSpace(name))
	if slug == "" {
		return fmt.Sprintf("statement-%d-%s.pdf", id, at.Format("20060102"))
	}
	return fmt.Sprintf("statement-%d-%s-%s.pdf", id, slug, at.Format("20060102"))
}
