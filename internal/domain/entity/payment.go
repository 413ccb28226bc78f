package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de un pago. Cualquier estado puede pasar a cualquier otro.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// PaymentStatuses lista cerrada de estados válidos.
var PaymentStatuses = []PaymentStatus{PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue}

// ParsePaymentStatus normaliza s (sin distinguir mayúsculas) a un estado válido.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range PaymentStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Valid indica si el estado pertenece a la enumeración.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}

// Payment representa un cobro registrado contra un cliente.
// Date es una fecha calendario (hora a medianoche UTC).
type Payment struct {
	ID          int64
	ClientID    int64
	ClientName  string // solo se llena en listados con join
	Amount      decimal.Decimal
	Status      PaymentStatus
	Date        time.Time
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
