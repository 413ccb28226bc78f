package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func newClientUC(store *memory.Store) *usecase.ClientUseCase {
	return usecase.NewClientUseCase(store.Clients(), store.Payments(), store)
}

func seedPayment(t *testing.T, store *memory.Store, clientID int64, amount int64, status entity.PaymentStatus, date string) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, store.Payments().Create(context.Background(), &entity.Payment{
		ClientID: clientID, Amount: decimal.NewFromInt(amount), Status: status, Date: d,
	}))
}

func TestClientUseCase_CreateNormalizaCampos(t *testing.T) {
	uc := newClientUC(memory.NewStore())
	out, err := uc.Create(context.Background(), dto.CreateClientRequest{
		Name: "  Jane Doe ", Email: " jane@example.com", Phone: strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", out.Name)
	assert.Equal(t, "jane@example.com", out.Email)
	assert.Nil(t, out.Phone)
	assert.NotZero(t, out.ID)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestClientUseCase_CreateValidaEmail(t *testing.T) {
	uc := newClientUC(memory.NewStore())
	_, err := uc.Create(context.Background(), dto.CreateClientRequest{Name: "Jane", Email: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientUseCase_GetByIDIncluyeMetricas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newClientUC(store)
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	seedPayment(t, store, c.ID, 10, entity.PaymentStatusPaid, "2024-01-01")
	seedPayment(t, store, c.ID, 30, entity.PaymentStatusOverdue, "2024-02-01")

	detail, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, detail.Payments, 2)
	assert.Equal(t, "2024-02-01", detail.Payments[0].Date)
	assert.Equal(t, 2, detail.Metrics.Count)
	assert.True(t, detail.Metrics.TotalRevenue.Equal(decimal.NewFromInt(40)))
	assert.True(t, detail.Metrics.OverdueAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, detail.Metrics.PendingAmount.IsZero())
}

func TestClientUseCase_UpdateSinCambiosConservaCampos(t *testing.T) {
	ctx := context.Background()
	uc := newClientUC(memory.NewStore())
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com", Phone: strPtr("555")})
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.UpdateClientRequest{Email: strPtr("jd@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Jane", out.Name)
	assert.Equal(t, "jd@example.com", out.Email)
	require.NotNil(t, out.Phone)
	assert.Equal(t, "555", *out.Phone)

	_, err = uc.Update(ctx, c.ID, dto.UpdateClientRequest{Name: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, 999, dto.UpdateClientRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_UpdatePhoneNullYAusente(t *testing.T) {
	ctx := context.Background()
	uc := newClientUC(memory.NewStore())
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com", Phone: strPtr("555")})
	require.NoError(t, err)

	var in dto.UpdateClientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane D"}`), &in))
	out, err := uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	require.NotNil(t, out.Phone, "sin clave phone el teléfono no cambia")
	assert.Equal(t, "555", *out.Phone)

	in = dto.UpdateClientRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"phone":null}`), &in))
	out, err = uc.Update(ctx, c.ID, in)
	require.NoError(t, err)
	assert.Nil(t, out.Phone)

	out, err = uc.Update(ctx, c.ID, dto.UpdateClientRequest{Phone: dto.OptionalString{Set: true, Value: strPtr(" 777 ")}})
	require.NoError(t, err)
	require.NotNil(t, out.Phone)
	assert.Equal(t, "777", *out.Phone)
}

// vanishingClients simula un borrado concurrente entre la lectura y la escritura.
type vanishingClients struct {
	repository.ClientRepository
	store *memory.Store
}

func (v vanishingClients) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := v.ClientRepository.GetByID(ctx, id)
	if c != nil {
		_, _ = v.store.Clients().Delete(ctx, id)
	}
	return c, err
}

func TestClientUseCase_UpdateClienteBorradoEntreMedias(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c, err := newClientUC(store).Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	uc := usecase.NewClientUseCase(vanishingClients{store.Clients(), store}, store.Payments(), store)
	_, err = uc.Update(ctx, c.ID, dto.UpdateClientRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newClientUC(store)
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	seedPayment(t, store, c.ID, 10, entity.PaymentStatusPaid, "2024-01-01")

	require.NoError(t, uc.Delete(ctx, c.ID))

	left, err := store.Payments().List(ctx, repository.PaymentFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
}

// failingPayments falla DeleteByClient para verificar el rollback de Delete.
type failingPayments struct {
	repository.PaymentRepository
}

func (failingPayments) DeleteByClient(context.Context, int64) (int64, error) {
	return 0, errors.New("disk full")
}

type failingTx struct{ store *memory.Store }

func (f failingTx) RunLedger(ctx context.Context, fn func(repository.ClientRepository, repository.PaymentRepository) error) error {
	return f.store.RunLedger(ctx, func(clients repository.ClientRepository, payments repository.PaymentRepository) error {
		return fn(clients, failingPayments{payments})
	})
}

func TestClientUseCase_DeleteFallidoNoBorraNada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewClientUseCase(store.Clients(), store.Payments(), failingTx{store})
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	err = uc.Delete(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrPersistence)

	got, err := store.Clients().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
