package statement_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/application/statement"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/memory"
)

type captureGenerator struct {
	data ports.StatementData
	err  error
}

func (g *captureGenerator) GenerateStatementPDF(_ context.Context, data ports.StatementData) ([]byte, error) {
	g.data = data
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-test"), nil
}

func TestStatementUseCase_ArmaDatosYNombreDeArchivo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &entity.Client{Name: "Ana María López", Email: "ana@example.com"}
	require.NoError(t, store.Clients().Create(ctx, client))
	for i, st := range []entity.PaymentStatus{entity.PaymentStatusPaid, entity.PaymentStatusOverdue} {
		require.NoError(t, store.Payments().Create(ctx, &entity.Payment{
			ClientID: client.ID, Amount: decimal.NewFromInt(int64(10 * (i + 1))), Status: st,
			Date: time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
		}))
	}

	gen := &captureGenerator{}
	uc := statement.NewStatementUseCase(store.Clients(), store.Payments(), gen, "Acme Tax")
	pdf, name, err := uc.DownloadStatementPDF(ctx, client.ID)
	require.NoError(t, err)

	assert.Equal(t, "%PDF-test", string(pdf))
	assert.Regexp(t, regexp.MustCompile(`^statement-\d+-ana-mara-lpez-\d{8}\.pdf$`), name)
	assert.Equal(t, "Acme Tax", gen.data.BusinessName)
	require.Len(t, gen.data.Payments, 2)
	assert.Equal(t, time.February, gen.data.Payments[0].Date.Month())
	assert.True(t, gen.data.Metrics.TotalRevenue.Equal(decimal.NewFromInt(30)))
}

func TestStatementUseCase_Errores(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	gen := &captureGenerator{}
	uc := statement.NewStatementUseCase(store.Clients(), store.Payments(), gen, "Acme Tax")

	_, _, err := uc.DownloadStatementPDF(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	client := &entity.Client{Name: "Jane", Email: "jane@example.com"}
	require.NoError(t, store.Clients().Create(ctx, client))
	gen.err = errors.New("render failed")
	_, _, err = uc.DownloadStatementPDF(ctx, client.ID)
	assert.ErrorIs(t, err, gen.err)
}
