package usecase

import (
	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
)

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// toPaymentResponse incluye el cliente embebido solo si withClient y el nombre está resuelto.
func toPaymentResponse(p *entity.Payment, withClient bool) dto.PaymentResponse {
	out := dto.PaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Amount:      p.Amount,
		Status:      string(p.Status),
		Date:        p.Date.Format(dto.DateLayout),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if withClient && p.ClientName != "" {
		out.Client = &dto.PaymentClientRef{ID: p.ClientID, Name: p.ClientName}
	}
	return out
}

func toPaymentResponses(list []*entity.Payment, withClient bool) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p, withClient))
	}
	return out
}

// ToMetricsResponse convierte las métricas del dominio al DTO.
func ToMetricsResponse(m ledger.Metrics) dto.MetricsResponse {
	return dto.MetricsResponse{
		Count:         m.Count,
		TotalRevenue:  m.TotalRevenue,
		PaidAmount:    m.PaidAmount,
		PendingAmount: m.PendingAmount,
		OverdueAmount: m.OverdueAmount,
	}
}
