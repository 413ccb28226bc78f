package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	limiter "github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/taxdesk/clientdesk-api/internal/application/mailing"
	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/application/statement"
	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/internal/domain/repository"
	infraemail "github.com/taxdesk/clientdesk-api/internal/infrastructure/email"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/memory"
	infrapdf "github.com/taxdesk/clientdesk-api/internal/infrastructure/pdf"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/taxdesk/clientdesk-api/internal/interfaces/http"
	"github.com/taxdesk/clientdesk-api/pkg/config"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("email_provider", cfg.Email.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		clientRepo  repository.ClientRepository
		paymentRepo repository.PaymentRepository
		txRunner    ports.LedgerTxRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		// Solo desarrollo: los datos se pierden al reiniciar.
		store := memory.NewStore()
		clientRepo, paymentRepo, txRunner = store.Clients(), store.Payments(), store
		log.Warn().Msg("usando almacenamiento en memoria")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if len(applied) > 0 {
			log.Info().Strs("versions", applied).Msg("migraciones aplicadas")
		}
		clientRepo = postgres.NewClientRepository(pool)
		paymentRepo = postgres.NewPaymentRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	emailLimiter, err := newEmailLimiter(cfg.Email.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.Email.RateLimit).Msg("EMAIL_RATE_LIMIT inválido")
	}

	clientUC := usecase.NewClientUseCase(clientRepo, paymentRepo, txRunner)
	paymentUC := usecase.NewPaymentUseCase(clientRepo, paymentRepo, txRunner)
	emailUC := mailing.NewEmailUseCase(newEmailSender(cfg.Email, log), clientRepo)

	// PDF: estado de cuenta del cliente
	pdfGenerator := infrapdf.NewMarotoStatementGenerator()
	statementUC := statement.NewStatementUseCase(clientRepo, paymentRepo, pdfGenerator, cfg.Business.Name)

	app := httpRouter.NewServer(httpRouter.ServerOptions{
		AppName:     cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	}, httpRouter.RouterDeps{
		ClientUC:     clientUC,
		PaymentUC:    paymentUC,
		EmailUC:      emailUC,
		StatementUC:  statementUC,
		EmailLimiter: emailLimiter,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newEmailSender elige el proveedor según EMAIL_PROVIDER.
func newEmailSender(cfg config.EmailConfig, log *logger.Logger) ports.EmailSender {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		return infraemail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From)
	case config.EmailProviderNone:
		log.Warn().Msg("envío de correo deshabilitado")
		return infraemail.DisabledSender{}
	default:
		if cfg.ResendAPIKey == "" {
			log.Warn().Msg("RESEND_API_KEY vacío: los envíos fallarán")
		}
		return infraemail.NewResendSender(cfg.ResendAPIKey, cfg.From, cfg.ResendBaseURL)
	}
}

func newEmailLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(limitermemory.NewStore(), rate), nil
}
