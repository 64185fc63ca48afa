// migrate aplica las migraciones embebidas contra la base configurada (DATABASE_URL o DB_*).
//
// Uso: go run ./cmd/migrate [up|down|status|version|reset|up-to N|down-to N]
// Sin argumentos ejecuta "up".
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Doacoes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Doacoes-api/pkg/config"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
	"github.com/jhoicas/Doacoes-api/pkg/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command, args := "up", []string(nil)
	if len(os.Args) > 1 {
		command, args = os.Args[1], os.Args[2:]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := migrate.RunWithPool(ctx, pool, command, args...); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
