package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taxdesk/clientdesk-api/internal/application/mailing"
	"github.com/taxdesk/clientdesk-api/internal/application/statement"
	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
	limiter "github.com/ulule/limiter/v3"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC     *usecase.ClientUseCase
	PaymentUC    *usecase.PaymentUseCase
	EmailUC      *mailing.EmailUseCase
	StatementUC  *statement.StatementUseCase
	EmailLimiter *limiter.Limiter // nil = sin límite
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	// Clients (el frontend los consume sin prefijo /api)
	clients := app.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.PaymentUC, deps.StatementUC, log.Named("clients"))
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/payments", clientHandler.Payments)
	clients.Post("/:id/payments", clientHandler.CreatePayment)
	clients.Get("/:id/statement", clientHandler.Statement)

	api := app.Group("/api")

	// Payments
	payments := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC, log.Named("payments"))
	payments.Get("/", paymentHandler.List)
	payments.Get("/metrics", paymentHandler.Metrics)
	payments.Post("/", paymentHandler.Create)
	payments.Put("/:id", paymentHandler.Update)
	payments.Patch("/:id/status", paymentHandler.UpdateStatus)
	payments.Delete("/:id", paymentHandler.Delete)

	// Email (envíos limitados por IP)
	email := api.Group("/email")
	emailHandler := NewEmailHandler(deps.EmailUC, log.Named("email"))
	email.Get("/templates", emailHandler.Templates)
	send := []fiber.Handler{}
	if deps.EmailLimiter != nil {
		send = append(send, RateLimit(deps.EmailLimiter, log.Named("ratelimit")))
	}
	email.Post("/send-email", append(send, emailHandler.Send)...)
	email.Post("/send-template", append(send, emailHandler.SendTemplate)...)
}
