package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/statement"
	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	uc        *usecase.ClientUseCase
	payments  *usecase.PaymentUseCase
	statement *statement.StatementUseCase
	log       *logger.Logger
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, payments *usecase.PaymentUseCase, st *statement.StatementUseCase, log *logger.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, payments: payments, statement: st, log: log}
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Param        search  query  string  false  "Filtro por nombre o email"
// @Success      200     {array}   dto.ClientResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch clients")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to create client")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente con sus pagos
// @Tags         clients
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch client")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update client")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente y todos sus pagos
// @Tags         clients
// @Param        id   path  int  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, "Failed to delete client")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Payments godoc
// @Summary      Listar pagos del cliente
// @Description  Pagos del cliente por fecha descendente.
// @Tags         clients
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id}/payments [get]
func (h *ClientHandler) Payments(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	list, err := h.payments.ListForClient(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch payments")
	}
	return c.JSON(list)
}

// CreatePayment godoc
// @Summary      Registrar pago del cliente
// @Description  El clientId del body se ignora; manda el del path.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del cliente"
// @Param        body  body  dto.CreatePaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /clients/{id}/payments [post]
func (h *ClientHandler) CreatePayment(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ClientID = &id
	out, err := h.payments.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to add payment")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta del cliente en PDF
// @Tags         clients
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clients/{id}/statement [get]
func (h *ClientHandler) Statement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	pdf, filename, err := h.statement.DownloadStatementPDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, "Failed to generate statement")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
