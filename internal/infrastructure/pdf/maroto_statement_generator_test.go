package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/pdf"
)

func TestGenerateStatementPDF_GeneraDocumento(t *testing.T) {
	desc := "2024 return"
	payments := []*entity.Payment{
		{ID: 2, ClientID: 1, Amount: decimal.RequireFromString("1250.00"), Status: entity.PaymentStatusPaid,
			Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Description: &desc},
		{ID: 1, ClientID: 1, Amount: decimal.RequireFromString("80"), Status: entity.PaymentStatusOverdue,
			Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	out, err := pdf.NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), ports.StatementData{
		BusinessName: "Tax & Financial Services",
		Client:       &entity.Client{ID: 1, Name: "Ana López", Email: "ana@example.com"},
		Payments:     payments,
		Metrics:      ledger.Compute(payments),
		GeneratedAt:  time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateStatementPDF_SinCliente(t *testing.T) {
	_, err := pdf.NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), ports.StatementData{})
	assert.Error(t, err)
}
