package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inspectos-api/internal/application/analytics"
	"github.com/jhoicas/inspectos-api/internal/application/auth"
	"github.com/jhoicas/inspectos-api/internal/application/partners"
	"github.com/jhoicas/inspectos-api/internal/application/ports"
	"github.com/jhoicas/inspectos-api/internal/application/scrub"
	infraai "github.com/jhoicas/inspectos-api/internal/infrastructure/ai"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/cache"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/migrations"
	infrapdf "github.com/jhoicas/inspectos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inspectos-api/internal/infrastructure/scrape"
	httpRouter "github.com/jhoicas/inspectos-api/internal/interfaces/http"
	"github.com/jhoicas/inspectos-api/pkg/config"
	"github.com/jhoicas/inspectos-api/pkg/logger"
	"github.com/jhoicas/inspectos-api/pkg/logos"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.App.MigrateOnStart {
		if err := migrations.NewMigrator(pool, log.Zerolog()).Up(); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	healthChecks := map[string]httpRouter.HealthCheck{
		"postgres": pool.Ping,
	}

	// Redis es opcional: sin REDIS_URL el panel y el scrub se calculan siempre.
	var appCache ports.Cache
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			appCache = cache.NewRedisCache(rdb)
			healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			defer rdb.Close()
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	agencyRepo := postgres.NewAgencyRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	overviewUC := analytics.NewOverviewUseCase(
		orderRepo, clientRepo, tenantRepo,
		appCache, cfg.Redis.TTL(),
		infrapdf.NewOverviewReportRenderer(),
		log.Component("overview"),
	)

	logoLookup := logos.New(cfg.Logos.Token).Lookup(logos.DefaultSize)
	agencyUC := partners.NewAgencyUseCase(agencyRepo, logoLookup)
	agentUC := partners.NewAgentUseCase(agentRepo, agencyRepo)

	// Sin AI_PROVIDER el scrub usa sólo la extracción por reglas.
	extractor := infraai.New(
		cfg.AI.Provider,
		cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel,
		cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel,
	)
	fetcher := scrape.NewHTTPFetcher(scrape.Config{
		Timeout:   cfg.Scrub.Timeout(),
		MaxBytes:  int64(cfg.Scrub.MaxBytes),
		UserAgent: cfg.Scrub.UserAgent,
	})
	scrubUC := scrub.NewScrubUseCase(
		fetcher, extractor, cfg.AI.Provider,
		appCache, cfg.Redis.TTL(),
		logoLookup,
		log.Component("scrub"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "InspectOS API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		AuthUC:       authUC,
		OverviewUC:   overviewUC,
		AgencyUC:     agencyUC,
		AgentUC:      agentUC,
		ScrubUC:      scrubUC,
		HealthChecks: healthChecks,
		JWTSecret:    cfg.JWT.Secret,
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
