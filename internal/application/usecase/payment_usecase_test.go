package usecase_test

import (
	"context"
	"testing"

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

type paymentFixture struct {
	store    *memory.Store
	uc       *usecase.PaymentUseCase
	clientID int64
}

func newPaymentFixture(t *testing.T) paymentFixture {
	t.Helper()
	store := memory.NewStore()
	client := &entity.Client{Name: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, store.Clients().Create(context.Background(), client))
	return paymentFixture{
		store:    store,
		uc:       usecase.NewPaymentUseCase(store.Clients(), store.Payments(), store),
		clientID: client.ID,
	}
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (f paymentFixture) create(t *testing.T, amt, status, date string) *dto.PaymentResponse {
	t.Helper()
	id := f.clientID
	out, err := f.uc.Create(context.Background(), dto.CreatePaymentRequest{
		ClientID: &id, Amount: amount(amt), Status: status, Date: date,
	})
	require.NoError(t, err)
	return out
}

func TestPaymentUseCase_CreateDefaultsYNormalizacion(t *testing.T) {
	f := newPaymentFixture(t)
	id := f.clientID
	out, err := f.uc.Create(context.Background(), dto.CreatePaymentRequest{
		ClientID: &id, Amount: amount("150.50"), Date: "2024-04-15T10:30:00Z", Description: strPtr(" "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", out.Status)
	assert.Equal(t, "2024-04-15", out.Date)
	assert.Nil(t, out.Description)
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("150.5")))

	out = f.create(t, "1", "paid", "2024-04-16")
	assert.Equal(t, "Paid", out.Status, "el estado se guarda en forma canónica")
}

func TestPaymentUseCase_CreateValidaciones(t *testing.T) {
	f := newPaymentFixture(t)
	id := f.clientID
	missing := int64(999)
	cases := map[string]dto.CreatePaymentRequest{
		"sin monto":            {ClientID: &id, Date: "2024-01-01"},
		"monto negativo":       {ClientID: &id, Amount: amount("-1"), Date: "2024-01-01"},
		"más de dos decimales": {ClientID: &id, Amount: amount("10.005"), Date: "2024-01-01"},
		"monto fuera de rango": {ClientID: &id, Amount: amount("1e15"), Date: "2024-01-01"},
		"estado desconocido":   {ClientID: &id, Amount: amount("1"), Status: "Refunded", Date: "2024-01-01"},
		"fecha inválida":       {ClientID: &id, Amount: amount("1"), Date: "01/02/2024"},
		"cliente inexistente":  {ClientID: &missing, Amount: amount("1"), Date: "2024-01-01"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestPaymentUseCase_ListFiltros(t *testing.T) {
	f := newPaymentFixture(t)
	f.create(t, "10", "Paid", "2024-01-10")
	f.create(t, "20", "Pending", "2024-02-10")
	f.create(t, "30", "Overdue", "2024-03-10")

	ctx := context.Background()
	all, err := f.uc.List(ctx, dto.PaymentListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-10", all[0].Date)
	require.NotNil(t, all[0].Client)
	assert.Equal(t, "Jane Doe", all[0].Client.Name)

	byRange, err := f.uc.List(ctx, dto.PaymentListQuery{From: "2024-02-01", To: "2024-02-28"})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "Pending", byRange[0].Status)

	_, err = f.uc.List(ctx, dto.PaymentListQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentUseCase_MetricsSobreElMismoFiltro(t *testing.T) {
	f := newPaymentFixture(t)
	f.create(t, "10", "Paid", "2024-01-10")
	f.create(t, "20", "Paid", "2024-02-10")
	f.create(t, "30", "Overdue", "2024-03-10")

	m, err := f.uc.Metrics(context.Background(), dto.PaymentListQuery{Status: "Paid"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count)
	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(30)))
	assert.True(t, m.OverdueAmount.IsZero())
}

func TestPaymentUseCase_ListForClient(t *testing.T) {
	f := newPaymentFixture(t)
	f.create(t, "10", "Paid", "2024-01-10")

	list, err := f.uc.ListForClient(context.Background(), f.clientID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Client)

	_, err = f.uc.ListForClient(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentUseCase_UpdateParcial(t *testing.T) {
	f := newPaymentFixture(t)
	p := f.create(t, "10", "Pending", "2024-01-10")
	ctx := context.Background()

	status := "Paid"
	out, err := f.uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Paid", out.Status)
	assert.True(t, out.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "2024-01-10", out.Date)

	_, err = f.uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una actualización vacía no es válida")

	missing := int64(999)
	_, err = f.uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{ClientID: &missing})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Update(ctx, 999, dto.UpdatePaymentRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, v := range []string{"10.005", "1000000000000"} {
		_, err = f.uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{Amount: amount(v)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, v)
	}
	out, err = f.uc.Update(ctx, p.ID, dto.UpdatePaymentRequest{Amount: amount("999999999999.99")})
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", out.Amount.StringFixed(2))
}

func TestPaymentUseCase_UpdateStatusCualquierTransicion(t *testing.T) {
	f := newPaymentFixture(t)
	p := f.create(t, "10", "Paid", "2024-01-10")
	ctx := context.Background()

	for _, st := range []string{"Overdue", "Pending", "Paid"} {
		out, err := f.uc.UpdateStatus(ctx, p.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, out.Status)
	}
	_, err := f.uc.UpdateStatus(ctx, p.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// vanishingPayments simula un borrado concurrente entre la lectura y la escritura.
type vanishingPayments struct {
	repository.PaymentRepository
	store *memory.Store
}

func (v vanishingPayments) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := v.PaymentRepository.GetByID(ctx, id)
	if p != nil {
		_, _ = v.store.Payments().Delete(ctx, id)
	}
	return p, err
}

func TestPaymentUseCase_UpdateStatusPagoBorradoEntreMedias(t *testing.T) {
	f := newPaymentFixture(t)
	p := f.create(t, "10", "Pending", "2024-01-10")
	uc := usecase.NewPaymentUseCase(f.store.Clients(), vanishingPayments{f.store.Payments(), f.store}, f.store)

	_, err := uc.UpdateStatus(context.Background(), p.ID, "Paid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentUseCase_DeleteDosVeces(t *testing.T) {
	f := newPaymentFixture(t)
	p := f.create(t, "10", "Paid", "2024-01-10")

	require.NoError(t, f.uc.Delete(context.Background(), p.ID))
	assert.ErrorIs(t, f.uc.Delete(context.Background(), p.ID), domain.ErrNotFound)
}
