// seed carga países desde un CSV a través del mismo caso de uso que la API, dentro de una
// única transacción: un error inesperado revierte toda la carga. Opcionalmente crea un
// usuario administrador.
//
// Uso: go run ./cmd/seed -countries paises.csv [-charset iso-8859-1] [-admin usuario:clave]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/masterdata-api/internal/application/dto"
	"github.com/jhoicas/masterdata-api/internal/application/seed"
	"github.com/jhoicas/masterdata-api/internal/application/usecase"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/postgres"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/security"
	"github.com/jhoicas/masterdata-api/pkg/config"
	"github.com/jhoicas/masterdata-api/pkg/logger"
)

const actor = "seed"

func main() {
	countriesPath := flag.String("countries", "", "CSV con columnas code,name[,year,cctld]")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, iso-8859-1 o windows-1252")
	admin := flag.String("admin", "", "crea un usuario ADMIN con el formato usuario:clave")
	flag.Parse()

	if *countriesPath == "" && *admin == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	err = postgres.NewTxRunner(pool).Run(ctx, func(tx postgres.DB) error {
		if *countriesPath != "" {
			f, err := os.Open(*countriesPath)
			if err != nil {
				return err
			}
			defer f.Close()

			uc := usecase.NewCountryUseCase(postgres.NewCountryRepository(tx), usecase.Options{})
			rep, err := seed.Countries(ctx, f, *charset, uc, actor)
			if err != nil {
				return err
			}
			for _, s := range rep.Skipped {
				log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("fila omitida")
			}
			log.Info().Int("created", rep.Created).Int("skipped", len(rep.Skipped)).Msg("países cargados")
		}
		if *admin != "" {
			return createAdmin(ctx, tx, cfg.MasterData.BaselineRole, *admin)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("carga revertida")
		os.Exit(1)
	}
}

func createAdmin(ctx context.Context, tx postgres.DB, baselineRole, credentials string) error {
	username, password, ok := strings.Cut(credentials, ":")
	if !ok {
		return fmt.Errorf("-admin debe tener el formato usuario:clave")
	}
	uc := usecase.NewUserUseCase(
		postgres.NewUserRepository(tx),
		postgres.NewRoleRepository(tx),
		postgres.NewPersonRepository(tx),
		security.NewBcryptHasher(0),
		baselineRole,
		usecase.Options{},
	)
	_, err := uc.Create(ctx, actor, dto.UserRequest{
		Username: &username,
		Password: &password,
		Roles:    []string{entity.RoleAdmin, baselineRole},
	})
	return err
}
