// migrate aplica las migraciones embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [-direction up|down]
package main

import (
	"flag"
	"os"

	"github.com/jhoicas/masterdata-api/internal/infrastructure/postgres"
	"github.com/jhoicas/masterdata-api/pkg/config"
	"github.com/jhoicas/masterdata-api/pkg/logger"
)

func main() {
	direction := flag.String("direction", "up", "up aplica todas las migraciones; down las revierte")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	if err := postgres.Migrate(cfg.DB.ConnectionString(), *direction); err != nil {
		log.Error().Err(err).Str("direction", *direction).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("direction", *direction).Msg("migraciones aplicadas")
}
