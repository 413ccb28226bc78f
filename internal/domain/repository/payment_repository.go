package repository

import (
	"context"
	"time"

	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

// PaymentFilter filtros opcionales para listar pagos. Los campos cero no filtran.
type PaymentFilter struct {
	ClientID int64
	Status   entity.PaymentStatus
	From     *time.Time // inclusive
	To       *time.Time // inclusive
}

// PaymentRepository define el puerto de persistencia para Payment.
// Los listados vienen ordenados por fecha descendente (id descendente como desempate)
// y con ClientName resuelto.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteByClient elimina todos los pagos del cliente y devuelve cuántos borró.
	DeleteByClient(ctx context.Context, clientID int64) (int64, error)
}
