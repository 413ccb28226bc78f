package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
)

func payment(amount int64, status entity.PaymentStatus) *entity.Payment {
	return &entity.Payment{Amount: decimal.NewFromInt(amount), Status: status}
}

func TestCompute_SumaPorEstado(t *testing.T) {
	m := ledger.Compute([]*entity.Payment{
		payment(10, entity.PaymentStatusPaid),
		payment(20, entity.PaymentStatusPending),
		payment(30, entity.PaymentStatusOverdue),
	})

	assert.Equal(t, 3, m.Count)
	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(60)), "total = %s", m.TotalRevenue)
	assert.True(t, m.PaidAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, m.PendingAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, m.OverdueAmount.Equal(decimal.NewFromInt(30)))
}

func TestCompute_ListaVacia(t *testing.T) {
	m := ledger.Compute(nil)

	assert.Equal(t, 0, m.Count)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.PaidAmount.IsZero())
}

// Los decimales no acumulan error de punto flotante.
func TestCompute_Decimales(t *testing.T) {
	a := &entity.Payment{Amount: decimal.RequireFromString("0.10"), Status: entity.PaymentStatusPaid}
	b := &entity.Payment{Amount: decimal.RequireFromString("0.20"), Status: entity.PaymentStatusPaid}

	m := ledger.Compute([]*entity.Payment{a, b, nil})

	assert.Equal(t, "0.3", m.PaidAmount.String())
	assert.Equal(t, 2, m.Count)
}
