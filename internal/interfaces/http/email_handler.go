package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taxdesk/clientdesk-api/internal/application/dto"
	"github.com/taxdesk/clientdesk-api/internal/application/mailing"
	"github.com/taxdesk/clientdesk-api/internal/domain"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

// EmailHandler maneja el envío de correos. Responde siempre con dto.SendEmailResponse.
type EmailHandler struct {
	uc  *mailing.EmailUseCase
	log *logger.Logger
}

// NewEmailHandler construye el handler.
func NewEmailHandler(uc *mailing.EmailUseCase, log *logger.Logger) *EmailHandler {
	return &EmailHandler{uc: uc, log: log}
}

// Send godoc
// @Summary      Enviar correo
// @Description  body es texto plano; los saltos de línea se envían como <br/>.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "Correo"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      400   {object}  dto.SendEmailResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.SendEmailResponse
// @Router       /api/email/send-email [post]
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return emailFailure(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	res, err := h.uc.Send(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SendEmailResponse{Success: true, Result: res})
}

// Templates GET /api/email/templates
func (h *EmailHandler) Templates(c *fiber.Ctx) error {
	return c.JSON(h.uc.Templates())
}

// SendTemplate godoc
// @Summary      Enviar plantilla a un cliente
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendTemplateRequest  true  "Cliente y plantilla"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      404   {object}  dto.SendEmailResponse
// @Router       /api/email/send-template [post]
func (h *EmailHandler) SendTemplate(c *fiber.Ctx) error {
	var in dto.SendTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return emailFailure(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	res, err := h.uc.SendTemplate(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.SendEmailResponse{Success: true, Result: res})
}

func (h *EmailHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return emailFailure(c, fiber.StatusBadRequest, userMessage(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrNotFound):
		return emailFailure(c, fiber.StatusNotFound, err.Error())
	}
	logInternal(c, h.log, err)
	return emailFailure(c, fiber.StatusInternalServerError, "Failed to send email")
}

func emailFailure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.SendEmailResponse{Success: false, Error: msg})
}
