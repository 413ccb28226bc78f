package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentSelect = `
	SELECT p.id, p.client_id, c.name, p.amount, p.status, p.date, p.description, p.created_at, p.updated_at
	FROM payments p
	JOIN clients c ON c.id = p.client_id`

// Create persiste un pago y asigna payment.ID.
func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (client_id, amount, status, date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		payment.ClientID, payment.Amount, string(payment.Status), payment.Date, payment.Description,
		payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return mapWriteErr("insert payment", err)
	}
	return nil
}

// GetByID obtiene un pago por ID con el nombre del cliente. (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List lista pagos filtrados, por fecha descendente.
func (r *PaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.ClientID != 0 {
		add("p.client_id = $%d", filter.ClientID)
	}
	if filter.Status != "" {
		add("p.status = $%d", string(filter.Status))
	}
	if filter.From != nil {
		add("p.date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("p.date <= $%d", *filter.To)
	}
	query := paymentSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY p.date DESC, p.id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables del pago. ErrNotFound si la fila ya no existe.
func (r *PaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET client_id = $2, amount = $3, status = $4, date = $5, description = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		payment.ID, payment.ClientID, payment.Amount, string(payment.Status), payment.Date,
		payment.Description, payment.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %d", domain.ErrNotFound, payment.ID)
	}
	return nil
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByClient elimina todos los pagos de un cliente.
func (r *PaymentRepo) DeleteByClient(ctx context.Context, clientID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE client_id = $1`, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete client payments: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		p      entity.Payment
		status string
	)
	if err := row.Scan(
		&p.ID, &p.ClientID, &p.ClientName, &p.Amount, &status, &p.Date, &p.Description,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = entity.PaymentStatus(status)
	return &p, nil
}

// mapWriteErr traduce violaciones de FK/CHECK a domain.ErrInvalidInput.
func mapWriteErr(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: client does not exist", domain.ErrInvalidInput)
	case isCheckViolation(err):
		return fmt.Errorf("%w: status must be one of Paid, Pending, Overdue", domain.ErrInvalidInput)
	case isNumericOutOfRange(err):
		return fmt.Errorf("%w: amount is out of range", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
