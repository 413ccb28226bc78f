package http

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

// ServerOptions parámetros del servidor HTTP.
type ServerOptions struct {
	AppName     string
	CORSOrigins string
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewServer crea la app Fiber con middlewares, /health, /docs y las rutas de la API.
func NewServer(opts ServerOptions, deps RouterDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	deps.Logger = log

	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: fiberErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CORSOrigins),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(RequestLogger(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    "ClientDesk API",
			}))
		} else {
			log.Warn().Str("file", opts.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
	})

	Router(app, deps)
	return app
}

func normalizeOrigins(origins string) string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
