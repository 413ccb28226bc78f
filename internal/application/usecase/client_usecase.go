package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/ledger"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

// ClientUseCase casos de uso del registro de clientes.
type ClientUseCase struct {
	clients  repository.ClientRepository
	payments repository.PaymentRepository
	tx       ports.LedgerTxRunner
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clients repository.ClientRepository, payments repository.PaymentRepository, tx ports.LedgerTxRunner) *ClientUseCase {
	return &ClientUseCase{clients: clients, payments: payments, tx: tx}
}

// List devuelve todos los clientes, opcionalmente filtrados por search.
func (uc *ClientUseCase) List(ctx context.Context, search string) ([]*dto.ClientResponse, error) {
	list, err := uc.clients.List(ctx, repository.ClientFilter{Search: search})
	if err != nil {
		return nil, persistErr("list clients", err)
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Create crea un cliente. Phone vacío se guarda como NULL.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	client := &entity.Client{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     dto.NormalizeOptional(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clients.Create(ctx, client); err != nil {
		return nil, persistErr("create client", err)
	}
	return toClientResponse(client), nil
}

// GetByID devuelve el cliente con sus pagos (fecha desc) y sus totales.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientDetailResponse, error) {
	client, err := uc.find(ctx, uc.clients, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{ClientID: id})
	if err != nil {
		return nil, persistErr("list client payments", err)
	}
	return &dto.ClientDetailResponse{
		ClientResponse: *toClientResponse(client),
		Payments:       toPaymentResponses(payments, false),
		Metrics:        ToMetricsResponse(ledger.Compute(payments)),
	}, nil
}

// Update aplica los campos presentes en in.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	client, err := uc.find(ctx, uc.clients, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone.Set {
		client.Phone = dto.NormalizeOptional(in.Phone.Value)
	}
	client.UpdatedAt = time.Now().UTC()
	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, persistErr("update client", err)
	}
	return toClientResponse(client), nil
}

// Delete elimina el cliente y todos sus pagos en una sola transacción.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.tx.RunLedger(ctx, func(clients repository.ClientRepository, payments repository.PaymentRepository) error {
		if _, err := uc.find(ctx, clients, id); err != nil {
			return err
		}
		if _, err := payments.DeleteByClient(ctx, id); err != nil {
			return persistErr("delete client payments", err)
		}
		deleted, err := clients.Delete(ctx, id)
		if err != nil {
			return persistErr("delete client", err)
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
	return persistErr("delete client tx", err)
}

func (uc *ClientUseCase) find(ctx context.Context, repo repository.ClientRepository, id int64) (*entity.Client, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	client, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("get client", err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %d", domain.ErrNotFound, id)
	}
	return client, nil
}
