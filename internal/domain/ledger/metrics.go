// Package ledger contiene cálculos puros sobre el libro de pagos.
package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

// Metrics totales agregados por estado. Se recalculan completos en cada consulta.
type Metrics struct {
	Count         int
	TotalRevenue  decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	OverdueAmount decimal.Decimal
}

// Compute suma los montos de payments: total general y por estado.
func Compute(payments []*entity.Payment) Metrics {
	m := Metrics{
		TotalRevenue:  decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		OverdueAmount: decimal.Zero,
	}
	for _, p := range payments {
		if p == nil {
			continue
		}
		m.Count++
		m.TotalRevenue = m.TotalRevenue.Add(p.Amount)
		switch p.Status {
		case entity.PaymentStatusPaid:
			m.PaidAmount = m.PaidAmount.Add(p.Amount)
		case entity.PaymentStatusPending:
			m.PendingAmount = m.PendingAmount.Add(p.Amount)
		case entity.PaymentStatusOverdue:
			m.OverdueAmount = m.OverdueAmount.Add(p.Amount)
		}
	}
	return m
}
