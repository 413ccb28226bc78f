package repository

import (
	"context"

	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

// ClientFilter filtros opcionales para el listado de clientes.
type ClientFilter struct {
	Search string // subcadena de name o email, sin distinguir mayúsculas
}

// ClientRepository define el puerto de persistencia para Client.
// GetByID devuelve (nil, nil) si el cliente no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve false si no había fila con ese id.
	Delete(ctx context.Context, id int64) (bool, error)
}
