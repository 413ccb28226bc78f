package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

// PaymentHandler maneja las peticiones HTTP del libro de pagos.
type PaymentHandler struct {
	uc  *usecase.PaymentUseCase
	log *logger.Logger
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *usecase.PaymentUseCase, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar pagos
// @Description  Pagos con el cliente embebido, por fecha descendente. Filtros opcionales.
// @Tags         payments
// @Produce      json
// @Param        status    query  string  false  "Paid | Pending | Overdue"
// @Param        clientId  query  int     false  "ID del cliente"
// @Param        from      query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha máxima YYYY-MM-DD"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var q dto.PaymentListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err, "Failed to fetch payments")
	}
	return c.JSON(list)
}

// Metrics godoc
// @Summary      Totales de pagos por estado
// @Tags         payments
// @Produce      json
// @Param        status    query  string  false  "Paid | Pending | Overdue"
// @Param        clientId  query  int     false  "ID del cliente"
// @Param        from      query  string  false  "Fecha mínima YYYY-MM-DD"
// @Param        to        query  string  false  "Fecha máxima YYYY-MM-DD"
// @Success      200  {object}  dto.MetricsResponse
// @Router       /api/payments/metrics [get]
func (h *PaymentHandler) Metrics(c *fiber.Ctx) error {
	var q dto.PaymentListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid query parameters"})
	}
	m, err := h.uc.Metrics(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err, "Failed to compute metrics")
	}
	return c.JSON(m)
}

// Create godoc
// @Summary      Registrar pago
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to add payment")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar pago (parcial)
// @Description  Acepta solo {status} o cualquier subconjunto de campos.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del pago"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update payment")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pago
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID del pago"
// @Param        body  body  dto.UpdatePaymentStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return respondError(c, h.log, err, "Failed to update payment status")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Param        id   path  int  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, "Failed to delete payment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
