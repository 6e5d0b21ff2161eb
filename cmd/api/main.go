package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/presales-crm/internal/application/auth"
	"github.com/jhoicas/presales-crm/internal/application/leads"
	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/infrastructure/cache"
	"github.com/jhoicas/presales-crm/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/presales-crm/internal/interfaces/http"
	"github.com/jhoicas/presales-crm/pkg/config"
	"github.com/jhoicas/presales-crm/pkg/jwt"
	"github.com/jhoicas/presales-crm/pkg/logger"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Caché de catálogos: Redis si está configurado, si no un caché nulo.
	var refCache usecase.Cache = cache.NopCache{}
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled() {
		redisCache = cache.NewRedis(cfg.Redis)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; los catálogos se leerán de la base")
		}
		defer redisCache.Close()
		refCache = redisCache
	}

	tokens, err := jwt.FromConfig(cfg.JWT)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	leadRepo := postgres.NewLeadRepository(pool)
	refRepo := postgres.NewReferenceRepository(pool)
	empRepo := postgres.NewEmployeeRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	callRepo := postgres.NewCallLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalog := usecase.NewReferenceCatalog(refRepo, refCache, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	leadUC := leads.NewUseCase(txRunner, leadRepo, log)
	projectUC := usecase.NewProjectUseCase(projectRepo, catalog, log)
	userUC := usecase.NewUserUseCase(txRunner, empRepo, catalog, log)
	callUC := usecase.NewCallLogUseCase(callRepo, leadRepo, log)
	authUC := auth.NewAuthUseCase(empRepo, tokens, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: func() string { return uuid.NewString() }}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Presales CRM API",
	}))

	health := func(c *fiber.Ctx) error {
		hctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		g, gctx := errgroup.WithContext(hctx)
		g.Go(func() error { return pool.Ping(gctx) })
		if redisCache != nil {
			g.Go(func() error { return redisCache.Ping(gctx) })
		}
		if err := g.Wait(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LeadUC:      leadUC,
		References:  catalog,
		ProjectUC:   projectUC,
		UserUC:      userUC,
		CallUC:      callUC,
		Tokens:      tokens,
		Validator:   validator.New(),
		LoginLimit:  httpRouter.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, log.Component("ratelimit")),
		HealthCheck: health,
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
