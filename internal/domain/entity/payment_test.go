package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

func TestParsePaymentStatus(t *testing.T) {
	cases := map[string]entity.PaymentStatus{
		"Paid":      entity.PaymentStatusPaid,
		"pending":   entity.PaymentStatusPending,
		" OVERDUE ": entity.PaymentStatusOverdue,
	}
	for in, want := range cases {
		got, ok := entity.ParsePaymentStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "Cancelled", "paid!"} {
		_, ok := entity.ParsePaymentStatus(in)
		assert.False(t, ok, "%q no debe ser un estado válido", in)
	}
}

func TestPaymentStatus_Valid(t *testing.T) {
	assert.True(t, entity.PaymentStatusPaid.Valid())
	assert.False(t, entity.PaymentStatus("paid").Valid(), "solo la forma canónica es válida")
	assert.False(t, entity.PaymentStatus("Refunded").Valid())
}
