// import_clients carga clientes desde un CSV (columnas name, email y opcionalmente phone).
//
// Uso: go run ./cmd/import_clients [-charset iso-8859-1] [-dry-run] clientes.csv
// Usa la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/taxdesk/clientdesk-api/internal/application/usecase"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/csvimport"
	"github.com/taxdesk/clientdesk-api/internal/infrastructure/postgres"
	"github.com/taxdesk/clientdesk-api/pkg/config"
	"github.com/taxdesk/clientdesk-api/pkg/logger"
)

func main() {
	charset := flag.String("charset", csvimport.CharsetUTF8, "codificación del archivo (utf-8 | iso-8859-1)")
	dryRun := flag.Bool("dry-run", false, "solo valida, no inserta")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_clients [-charset iso-8859-1] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("import")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	clients, rowErrs, err := csvimport.ReadClients(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	for _, re := range rowErrs {
		log.Warn().Int("line", re.Line).Err(re.Err).Msg("fila descartada")
	}
	if *dryRun {
		log.Info().Int("valid", len(clients)).Int("skipped", len(rowErrs)).Msg("dry-run terminado")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := usecase.NewClientUseCase(
		postgres.NewClientRepository(pool),
		postgres.NewPaymentRepository(pool),
		postgres.NewTxRunner(pool),
	)
	created := 0
	for _, in := range clients {
		if _, err := uc.Create(ctx, in); err != nil {
			log.Error().Err(err).Str("email", in.Email).Msg("crear cliente")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", len(rowErrs)+len(clients)-created).Msg("importación terminada")
}
