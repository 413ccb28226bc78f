package usecase

import (
	"errors"
	"fmt"

	"github.com/taxdesk/clientdesk-api/internal/domain"
)

// persistErr envuelve fallos del store como domain.ErrPersistence conservando la causa.
// Los errores de dominio (validación, no encontrado) pasan sin cambios.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
