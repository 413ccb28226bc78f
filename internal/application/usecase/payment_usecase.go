package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

// PaymentUseCase casos de uso del libro de pagos.
type PaymentUseCase struct {
	clients  repository.ClientRepository
	payments repository.PaymentRepository
	tx       ports.LedgerTxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(clients repository.ClientRepository, payments repository.PaymentRepository, tx ports.LedgerTxRunner) *PaymentUseCase {
	return &PaymentUseCase{clients: clients, payments: payments, tx: tx}
}

// List lista pagos con el cliente dueño embebido, aplicando los filtros de q.
func (uc *PaymentUseCase) List(ctx context.Context, q dto.PaymentListQuery) ([]dto.PaymentResponse, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list, true), nil
}

// Metrics calcula los totales sobre el mismo conjunto que devolvería List(q).
func (uc *PaymentUseCase) Metrics(ctx context.Context, q dto.PaymentListQuery) (*dto.MetricsResponse, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	m := ToMetricsResponse(ledger.Compute(list))
	return &m, nil
}

// ListForClient lista los pagos de un cliente por fecha descendente.
func (uc *PaymentUseCase) ListForClient(ctx context.Context, clientID int64) ([]dto.PaymentResponse, error) {
	if err := uc.requireClient(ctx, uc.clients, clientID, domain.ErrNotFound); err != nil {
		return nil, err
	}
	list, err := uc.payments.List(ctx, repository.PaymentFilter{ClientID: clientID})
	if err != nil {
		return nil, persistErr("list client payments", err)
	}
	return toPaymentResponses(list, false), nil
}

// Create registra un pago. El cliente debe existir; si no, es un error de validación.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	payment := &entity.Payment{
		ClientID:    *in.ClientID,
		Amount:      *in.Amount,
		Status:      in.ParsedStatus(),
		Date:        in.ParsedDate(),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.RunLedger(ctx, func(clients repository.ClientRepository, payments repository.PaymentRepository) error {
		if err := uc.requireClient(ctx, clients, payment.ClientID, domain.ErrInvalidInput); err != nil {
			return err
		}
		if err := payments.Create(ctx, payment); err != nil {
			return persistErr("create payment", err)
		}
		return nil
	})
	if err != nil {
		return nil, persistErr("create payment tx", err)
	}
	out := toPaymentResponse(payment, false)
	return &out, nil
}

// UpdateStatus cambia solo el estado. Cualquier estado puede pasar a cualquier otro.
func (uc *PaymentUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.PaymentResponse, error) {
	st, ok := entity.ParsePaymentStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: status must be one of Paid, Pending, Overdue", domain.ErrInvalidInput)
	}
	payment, err := uc.find(ctx, uc.payments, id)
	if err != nil {
		return nil, err
	}
	payment.Status = st
	payment.UpdatedAt = time.Now().UTC()
	if err := uc.payments.Update(ctx, payment); err != nil {
		return nil, persistErr("update payment status", err)
	}
	out := toPaymentResponse(payment, false)
	return &out, nil
}

// Update aplica los campos presentes en in. Si cambia el cliente, el nuevo debe existir.
func (uc *PaymentUseCase) Update(ctx context.Context, id int64, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var payment *entity.Payment
	err := uc.tx.RunLedger(ctx, func(clients repository.ClientRepository, payments repository.PaymentRepository) error {
		p, err := uc.find(ctx, payments, id)
		if err != nil {
			return err
		}
		if in.ClientID != nil && *in.ClientID != p.ClientID {
			if err := uc.requireClient(ctx, clients, *in.ClientID, domain.ErrInvalidInput); err != nil {
				return err
			}
			p.ClientID = *in.ClientID
		}
		if in.Amount != nil {
			p.Amount = *in.Amount
		}
		if st := in.ParsedStatus(); st != nil {
			p.Status = *st
		}
		if d := in.ParsedDate(); d != nil {
			p.Date = *d
		}
		if in.Description != nil {
			p.Description = dto.NormalizeOptional(in.Description)
		}
		p.UpdatedAt = time.Now().UTC()
		if err := payments.Update(ctx, p); err != nil {
			return persistErr("update payment", err)
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, persistErr("update payment tx", err)
	}
	out := toPaymentResponse(payment, false)
	return &out, nil
}

// Delete elimina un pago. Un segundo borrado del mismo id devuelve ErrNotFound.
func (uc *PaymentUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	deleted, err := uc.payments.Delete(ctx, id)
	if err != nil {
		return persistErr("delete payment", err)
	}
	if !deleted {
		return fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *PaymentUseCase) list(ctx context.Context, q dto.PaymentListQuery) ([]*entity.Payment, error) {
	filter := repository.PaymentFilter{ClientID: q.ClientID}
	if strings.TrimSpace(q.Status) != "" {
		st, ok := entity.ParsePaymentStatus(q.Status)
		if !ok {
			return nil, fmt.Errorf("%w: status must be one of Paid, Pending, Overdue", domain.ErrInvalidInput)
		}
		filter.Status = st
	}
	if strings.TrimSpace(q.From) != "" {
		d, err := dto.ParseDate(q.From)
		if err != nil {
			return nil, err
		}
		filter.From = &d
	}
	if strings.TrimSpace(q.To) != "" {
		d, err := dto.ParseDate(q.To)
		if err != nil {
			return nil, err
		}
		filter.To = &d
	}
	list, err := uc.payments.List(ctx, filter)
	if err != nil {
		return nil, persistErr("list payments", err)
	}
	return list, nil
}

// requireClient verifica que el cliente exista; si no, devuelve notFoundErr envuelto.
func (uc *PaymentUseCase) requireClient(ctx context.Context, repo repository.ClientRepository, clientID int64, notFoundErr error) error {
	if clientID <= 0 {
		return fmt.Errorf("%w: client %d does not exist", notFoundErr, clientID)
	}
	client, err := repo.GetByID(ctx, clientID)
	if err != nil {
		return persistErr("get client", err)
	}
	if client == nil {
		return fmt.Errorf("%w: client %d does not exist", notFoundErr, clientID)
	}
	return nil
}

func (uc *PaymentUseCase) find(ctx context.Context, repo repository.PaymentRepository, id int64) (*entity.Payment, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	payment, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get payment", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
	}
	return payment, nil
}
