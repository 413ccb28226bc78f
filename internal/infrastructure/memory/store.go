// Package memory implementa los repositorios de clientes y pagos en memoria.
// Se usa con STORE_DRIVER=memory (demo local sin PostgreSQL) y en tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
	_ ports.LedgerTxRunner         = (*Store)(nil)
)

// Store tablas en memoria. Las transacciones se serializan y se revierten con una copia;
// las operaciones fuera de transacción esperan a que termine la que esté en curso, de modo
// que un rollback nunca pisa escrituras ajenas.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	clients  map[int64]entity.Client
	payments map[int64]entity.Payment
	nextCID  int64
	nextPID  int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		clients:  make(map[int64]entity.Client),
		payments: make(map[int64]entity.Payment),
	}
}

// Clients repositorio de clientes sobre el store.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Payments repositorio de pagos sobre el store.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// lock toma txMu salvo dentro de RunLedger, que ya lo tiene. Devuelve el unlock.
func (s *Store) lock(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// RunLedger ejecuta fn en exclusión mutua con cualquier otra operación del store;
// si fn falla se restaura el estado previo. fn debe usar solo los repos que recibe.
func (s *Store) RunLedger(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(&ClientRepo{s: s, inTx: true}, &PaymentRepo{s: s, inTx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	clients  map[int64]entity.Client
	payments map[int64]entity.Payment
	nextCID  int64
	nextPID  int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		clients:  make(map[int64]entity.Client, len(s.clients)),
		payments: make(map[int64]entity.Payment, len(s.payments)),
		nextCID:  s.nextCID,
		nextPID:  s.nextPID,
	}
	for k, v := range s.clients {
		snap.clients[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = snap.clients
	s.payments = snap.payments
	s.nextCID = snap.nextCID
	s.nextPID = snap.nextPID
}

// ClientRepo implementación en memoria de ClientRepository.
type ClientRepo struct {
	s    *Store
	inTx bool
}

// Create asigna el siguiente id y guarda una copia.
func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	defer r.s.lock(r.inTx)()
	r.s.nextCID++
	client.ID = r.s.nextCID
	r.s.clients[client.ID] = cloneClient(*client)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	defer r.s.lock(r.inTx)()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	out := cloneClient(c)
	return &out, nil
}

// List ordena por nombre e id.
func (r *ClientRepo) List(_ context.Context, filter repository.ClientFilter) ([]*entity.Client, error) {
	defer r.s.lock(r.inTx)()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	list := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		cc := cloneClient(c)
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update reemplaza la fila; ErrNotFound si ya no existe.
func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.clients[client.ID]; !ok {
		return fmt.Errorf("%w: client %d", domain.ErrNotFound, client.ID)
	}
	r.s.clients[client.ID] = cloneClient(*client)
	return nil
}

// Delete no toca los pagos: la cascada es responsabilidad del caso de uso.
func (r *ClientRepo) Delete(_ context.Context, id int64) (bool, error) {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.clients[id]; !ok {
		return false, nil
	}
	delete(r.s.clients, id)
	return true, nil
}

// PaymentRepo implementación en memoria de PaymentRepository.
type PaymentRepo struct {
	s    *Store
	inTx bool
}

// Create asigna el siguiente id. Igual que la FK de PostgreSQL, exige que el cliente exista.
func (r *PaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.clients[payment.ClientID]; !ok {
		return fmt.Errorf("%w: client %d does not exist", domain.ErrInvalidInput, payment.ClientID)
	}
	r.s.nextPID++
	payment.ID = r.s.nextPID
	stored := clonePayment(*payment)
	stored.ClientName = ""
	r.s.payments[payment.ID] = stored
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	out := r.withClientName(p)
	return &out, nil
}

// List filtra y ordena por fecha desc, id desc.
func (r *PaymentRepo) List(_ context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	defer r.s.lock(r.inTx)()
	list := make([]*entity.Payment, 0)
	for _, p := range r.s.payments {
		if filter.ClientID != 0 && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.From != nil && p.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && p.Date.After(*filter.To) {
			continue
		}
		pp := r.withClientName(p)
		list = append(list, &pp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

// Update reemplaza la fila; ErrNotFound si ya no existe.
func (r *PaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.payments[payment.ID]; !ok {
		return fmt.Errorf("%w: payment %d", domain.ErrNotFound, payment.ID)
	}
	if _, ok := r.s.clients[payment.ClientID]; !ok {
		return fmt.Errorf("%w: client %d does not exist", domain.ErrInvalidInput, payment.ClientID)
	}
	stored := clonePayment(*payment)
	stored.ClientName = ""
	r.s.payments[payment.ID] = stored
	return nil
}

// Delete devuelve false si no existía.
func (r *PaymentRepo) Delete(_ context.Context, id int64) (bool, error) {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.payments[id]; !ok {
		return false, nil
	}
	delete(r.s.payments, id)
	return true, nil
}

// DeleteByClient elimina todos los pagos del cliente.
func (r *PaymentRepo) DeleteByClient(_ context.Context, clientID int64) (int64, error) {
	defer r.s.lock(r.inTx)()
	var n int64
	for id, p := range r.s.payments {
		if p.ClientID == clientID {
			delete(r.s.payments, id)
			n++
		}
	}
	return n, nil
}

// withClientName requiere el lock del store tomado.
func (r *PaymentRepo) withClientName(p entity.Payment) entity.Payment {
	out := clonePayment(p)
	if c, ok := r.s.clients[p.ClientID]; ok {
		out.ClientName = c.Name
	}
	return out
}

func cloneClient(c entity.Client) entity.Client {
	if c.Phone != nil {
		phone := *c.Phone
		c.Phone = &phone
	}
	return c
}

func clonePayment(p entity.Payment) entity.Payment {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}
