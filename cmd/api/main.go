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

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/usecase"
	"github.com/jhoicas/timesheet-api/internal/infrastructure/email"
	"github.com/jhoicas/timesheet-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/timesheet-api/internal/interfaces/http"
	"github.com/jhoicas/timesheet-api/pkg/config"
	"github.com/jhoicas/timesheet-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	crewRepo := postgres.NewCrewChiefRepository(pool)
	jobTypeRepo := postgres.NewJobTypeRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	notifier := email.NewNotifier(cfg.SMTP, log.Zerolog())

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, sessionTTL)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	jobTypeUC := usecase.NewJobTypeUseCase(jobTypeRepo, log.Zerolog())
	crewUC := usecase.NewCrewChiefUseCase(crewRepo, companyRepo)
	entryUC := usecase.NewEntryUseCase(entryRepo, companyRepo, crewRepo, crewUC, notifier, log.Zerolog())
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Timesheet API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		CompanyUC:         companyUC,
		JobTypeUC:         jobTypeUC,
		CrewChiefUC:       crewUC,
		EntryUC:           entryUC,
		UserUC:            userUC,
		SessionCookieName: cfg.Session.CookieName,
		SecureCookies:     cfg.Session.Secure,
	})

	// Purga periódica de sesiones expiradas.
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if err := sessionRepo.DeleteExpired(purgeCtx); err != nil {
					log.Warn().Err(err).Msg("purga de sesiones expiradas")
				}
			}
		}
	}()

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
