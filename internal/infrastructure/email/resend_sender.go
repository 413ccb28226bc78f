package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
)

// Verificar en tiempo de compilación que ResendSender implementa EmailSender.
var _ ports.EmailSender = (*ResendSender)(nil)

const providerResend = "resend"

// ResendSender adaptador que implementa EmailSender usando la API REST de Resend.
type ResendSender struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewResendSender construye el adaptador. Si apiKey está vacío cada envío devuelve
// un error descriptivo en lugar de llamar a la API.
func NewResendSender(apiKey, from, baseURL string) *ResendSender {
	return &ResendSender{
		apiKey:  apiKey,
		from:    from,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send envía el correo en una sola llamada; no reintenta.
func (s *ResendSender) Send(ctx context.Context, msg ports.EmailMessage) (*ports.EmailDelivery, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("resend: RESEND_API_KEY no configurado")
	}
	if s.from == "" {
		return nil, fmt.Errorf("resend: EMAIL_FROM no configurado")
	}

	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, fmt.Errorf("resend: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("resend: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("resend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("resend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("resend: leer respuesta: %w", err)
	}

	var out resendResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Message != "" {
			return nil, fmt.Errorf("resend: HTTP %d: %s", resp.StatusCode, out.Message)
		}
		return nil, fmt.Errorf("resend: HTTP %d", resp.StatusCode)
	}
	return &ports.EmailDelivery{ID: out.ID, Provider: providerResend}, nil
}
