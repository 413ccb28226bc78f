package mailing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/mailing"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/memory"
)

type recordingSender struct {
	msgs []ports.EmailMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg ports.EmailMessage) (*ports.EmailDelivery, error) {
	s.msgs = append(s.msgs, msg)
	if s.err != nil {
		return nil, s.err
	}
	return &ports.EmailDelivery{ID: "abc", Provider: "test"}, nil
}

func TestEmailUseCase_SendConvierteSaltos(t *testing.T) {
	sender := &recordingSender{}
	uc := mailing.NewEmailUseCase(sender, memory.NewStore().Clients())

	res, err := uc.Send(context.Background(), dto.SendEmailRequest{
		To: "jane@example.com", Subject: "Docs", Body: "Hola\r\nJane\nSaludos",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", res.ID)
	assert.Equal(t, "test", res.Provider)
	assert.Equal(t, "jane@example.com", res.To)
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "Hola<br/>Jane<br/>Saludos", sender.msgs[0].HTML)
}

func TestEmailUseCase_SendErrores(t *testing.T) {
	sender := &recordingSender{}
	uc := mailing.NewEmailUseCase(sender, memory.NewStore().Clients())

	_, err := uc.Send(context.Background(), dto.SendEmailRequest{To: "", Subject: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, sender.msgs, "no se intenta el envío si la validación falla")

	boom := errors.New("smtp: 550")
	sender.err = boom
	_, err = uc.Send(context.Background(), dto.SendEmailRequest{To: "jane@example.com", Subject: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, sender.msgs, 1, "un solo intento, sin reintentos")
}

func TestEmailUseCase_SendTemplateUsaAnioAnteriorYPrimerNombre(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &entity.Client{Name: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, store.Clients().Create(ctx, client))

	sender := &recordingSender{}
	uc := mailing.NewEmailUseCase(sender, store.Clients()).
		WithClock(func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) })

	_, err := uc.SendTemplate(ctx, dto.SendTemplateRequest{ClientID: client.ID, TemplateID: 1})
	require.NoError(t, err)
	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Contains(t, msg.Subject+msg.HTML, "2024")
	assert.Contains(t, msg.HTML, "Jane")
	assert.NotContains(t, msg.HTML, "Doe")
	assert.NotContains(t, msg.HTML, "{{")
	assert.NotContains(t, msg.HTML, "\n")
}

func TestEmailUseCase_SendTemplateNoEncontrado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &entity.Client{Name: "Jane", Email: "jane@example.com"}
	require.NoError(t, store.Clients().Create(ctx, client))
	uc := mailing.NewEmailUseCase(&recordingSender{}, store.Clients())

	_, err := uc.SendTemplate(ctx, dto.SendTemplateRequest{ClientID: client.ID, TemplateID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SendTemplate(ctx, dto.SendTemplateRequest{ClientID: 999, TemplateID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SendTemplate(ctx, dto.SendTemplateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmailUseCase_Templates(t *testing.T) {
	list := mailing.NewEmailUseCase(&recordingSender{}, memory.NewStore().Clients()).Templates()
	require.NotEmpty(t, list)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, "Tax Documents", list[0].Name)
}
