package dto

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// CreateClientRequest body para POST /clients.
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Validate recorta espacios y exige name y email válidos.
func (r *CreateClientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" || r.Email == "" {
		return invalid("name and email are required")
	}
	if !govalidator.IsEmail(r.Email) {
		return invalid("email %q is not valid", r.Email)
	}
	return nil
}

// UpdateClientRequest body para PUT /clients/:id. Solo se aplican los campos presentes;
// phone null o "" borra el teléfono.
type UpdateClientRequest struct {
	Name  *string        `json:"name,omitempty"`
	Email *string        `json:"email,omitempty"`
	Phone OptionalString `json:"phone" swaggertype:"string" extensions:"x-nullable"`
}

// Validate valida los campos presentes con las mismas reglas que en la creación.
func (r *UpdateClientRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return invalid("name cannot be empty")
		}
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" {
			return invalid("email cannot be empty")
		}
		if !govalidator.IsEmail(email) {
			return invalid("email %q is not valid", email)
		}
		r.Email = &email
	}
	return nil
}

// ClientResponse cliente en respuestas. Phone se serializa como null si no existe.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientDetailResponse cliente con sus pagos (fecha desc) y totales para GET /clients/:id.
type ClientDetailResponse struct {
	ClientResponse
	Payments []PaymentResponse `json:"payments"`
	Metrics  MetricsResponse   `json:"metrics"`
}
