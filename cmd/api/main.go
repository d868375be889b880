package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/masterdata-api/docs"
	"github.com/jhoicas/masterdata-api/internal/application/auth"
	"github.com/jhoicas/masterdata-api/internal/application/usecase"
	"github.com/jhoicas/masterdata-api/internal/domain/entity"
	"github.com/jhoicas/masterdata-api/internal/domain/repository"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/cache"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/metrics"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/postgres"
	"github.com/jhoicas/masterdata-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/masterdata-api/internal/interfaces/http"
	"github.com/jhoicas/masterdata-api/internal/interfaces/httperr"
	"github.com/jhoicas/masterdata-api/internal/interfaces/web"
	"github.com/jhoicas/masterdata-api/pkg/config"
	"github.com/jhoicas/masterdata-api/pkg/logger"
)

// @title                       Master Data API
// @version                     1.0
// @description                 Administración de datos de referencia: países, géneros, títulos, tipos de identificación, personas y usuarios.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	if cfg.Migrations.AutoRun {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	opts := usecase.Options{Observer: m}
	ttl := cfg.MasterData.CacheTTL

	// Los datos de referencia se resuelven por ID en cada alta/edición de persona: van cacheados.
	countryRepo := withCache[entity.Country](entity.CountryEntity, postgres.NewCountryRepository(pool), ttl)
	genderRepo := withCache[entity.Gender](entity.GenderEntity, postgres.NewGenderRepository(pool), ttl)
	titleRepo := withCache[entity.Title](entity.TitleEntity, postgres.NewTitleRepository(pool), ttl)
	idTypeRepo := withCache[entity.IdType](entity.IdTypeEntity, postgres.NewIdTypeRepository(pool), ttl)
	personRepo := postgres.NewPersonRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	hasher := security.NewBcryptHasher(0)

	countryUC := usecase.NewCountryUseCase(countryRepo, opts)
	genderUC := usecase.NewGenderUseCase(genderRepo, opts)
	titleUC := usecase.NewTitleUseCase(titleRepo, opts)
	idTypeUC := usecase.NewIdTypeUseCase(idTypeRepo, opts)
	personUC := usecase.NewPersonUseCase(personRepo, usecase.PersonReferences{
		Titles:    titleRepo,
		Genders:   genderRepo,
		IdTypes:   idTypeRepo,
		Countries: countryRepo,
	}, cfg.MasterData.NationalIDTypeCode, opts)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, personRepo, hasher, cfg.MasterData.BaselineRole, opts)
	roleUC := usecase.NewRoleUseCase(roleRepo)
	authUC := auth.NewAuthUseCase(userRepo, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	httpLog := log.Component("http")
	translator := httperr.NewTranslator(httpLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		Immutable:    true,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog, m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Master Data API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Countries:  countryUC,
		Genders:    genderUC,
		Titles:     titleUC,
		IdTypes:    idTypeUC,
		Persons:    personUC,
		Users:      userUC,
		Roles:      roleUC,
		AuthUC:     authUC,
		Translator: translator,
		JWTSecret:  cfg.JWT.Secret,
	})

	ui := app.Group("/ui", httpRouter.AuthMiddleware(cfg.JWT.Secret))
	web.NewHandler(web.Deps{
		Countries:  countryUC,
		Genders:    genderUC,
		Titles:     titleUC,
		IdTypes:    idTypeUC,
		Translator: translator,
	}).Mount(ui, httpRouter.RequireRole(entity.RoleAdmin))

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

// withCache envuelve el repositorio con la caché de lecturas por ID; ttl 0 la desactiva.
func withCache[T any](name string, next repository.Store[T], ttl time.Duration) repository.Store[T] {
	if ttl <= 0 {
		return next
	}
	return cache.NewStore(name, next, ttl)
}
