package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

// maxAmount mayor valor que cabe en la columna amount NUMERIC(14, 2).
var maxAmount = decimal.RequireFromString("999999999999.99")

// validateAmount: no negativo, como mucho dos decimales y dentro de NUMERIC(14, 2).
func validateAmount(a decimal.Decimal) error {
	if a.IsNegative() {
		return invalid("amount cannot be negative")
	}
	if !a.Equal(a.Truncate(2)) {
		return invalid("amount cannot have more than two decimal places")
	}
	if a.GreaterThan(maxAmount) {
		return invalid("amount cannot exceed %s", maxAmount.StringFixed(2))
	}
	return nil
}

// CreatePaymentRequest body para POST /api/payments y POST /clients/:id/payments.
// En la ruta anidada ClientID lo toma el handler del path.
type CreatePaymentRequest struct {
	ClientID    *int64           `json:"clientId"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      string           `json:"status,omitempty"` // Paid|Pending|Overdue; vacío = Pending
	Date        string           `json:"date"`             // YYYY-MM-DD
	Description *string          `json:"description,omitempty"`

	parsedStatus entity.PaymentStatus
	parsedDate   time.Time
}

// Validate exige clientId, amount y date; normaliza status y date.
func (r *CreatePaymentRequest) Validate() error {
	if r.ClientID == nil || *r.ClientID <= 0 || r.Amount == nil || strings.TrimSpace(r.Date) == "" {
		return invalid("clientId, amount and date are required")
	}
	if err := validateAmount(*r.Amount); err != nil {
		return err
	}
	status := entity.PaymentStatusPending
	if strings.TrimSpace(r.Status) != "" {
		st, ok := entity.ParsePaymentStatus(r.Status)
		if !ok {
			return invalid("status must be one of Paid, Pending, Overdue")
		}
		status = st
	}
	date, err := ParseDate(r.Date)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	r.parsedDate = date
	r.Description = NormalizeOptional(r.Description)
	return nil
}

// ParsedStatus estado normalizado (válido solo después de Validate).
func (r *CreatePaymentRequest) ParsedStatus() entity.PaymentStatus { return r.parsedStatus }

// ParsedDate fecha normalizada (válida solo después de Validate).
func (r *CreatePaymentRequest) ParsedDate() time.Time { return r.parsedDate }

// UpdatePaymentRequest body para PUT /api/payments/:id. Solo se aplican los campos presentes.
type UpdatePaymentRequest struct {
	ClientID    *int64           `json:"clientId,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`

	parsedStatus *entity.PaymentStatus
	parsedDate   *time.Time
}

// Validate valida los campos presentes.
func (r *UpdatePaymentRequest) Validate() error {
	if r.ClientID == nil && r.Amount == nil && r.Status == nil && r.Date == nil && r.Description == nil {
		return invalid("no fields to update")
	}
	if r.ClientID != nil && *r.ClientID <= 0 {
		return invalid("clientId must be positive")
	}
	if r.Amount != nil {
		if err := validateAmount(*r.Amount); err != nil {
			return err
		}
	}
	if r.Status != nil {
		st, ok := entity.ParsePaymentStatus(*r.Status)
		if !ok {
			return invalid("status must be one of Paid, Pending, Overdue")
		}
		r.parsedStatus = &st
	}
	if r.Date != nil {
		d, err := ParseDate(*r.Date)
		if err != nil {
			return err
		}
		r.parsedDate = &d
	}
	return nil
}

// ParsedStatus estado normalizado o nil si no vino.
func (r *UpdatePaymentRequest) ParsedStatus() *entity.PaymentStatus { return r.parsedStatus }

// ParsedDate fecha normalizada o nil si no vino.
func (r *UpdatePaymentRequest) ParsedDate() *time.Time { return r.parsedDate }

// UpdatePaymentStatusRequest body para PATCH /api/payments/:id/status.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}

// PaymentListQuery filtros de GET /api/payments (query string).
type PaymentListQuery struct {
	ClientID int64  `query:"clientId"`
	Status   string `query:"status"`
	From     string `query:"from"`
	To       string `query:"to"`
}

// PaymentClientRef cliente dueño embebido en los listados de pagos.
type PaymentClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID          int64             `json:"id"`
	ClientID    int64             `json:"clientId"`
	Amount      decimal.Decimal   `json:"amount"`
	Status      string            `json:"status"`
	Date        string            `json:"date"`
	Description *string           `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Client      *PaymentClientRef `json:"client,omitempty"`
}

// MetricsResponse totales del libro de pagos.
type MetricsResponse struct {
	Count         int             `json:"count"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	OverdueAmount decimal.Decimal `json:"overdueAmount"`
}

// NormalizeOptional convierte "" (tras recortar espacios) en nil.
func NormalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
