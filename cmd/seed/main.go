package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/timesheet"
	"github.com/jhoicas/timesheet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/timesheet-api/pkg/config"
	"github.com/jhoicas/timesheet-api/pkg/logger"
)

// Seed de arranque: aplica migraciones, crea el usuario admin desde las env
// vars ADMIN_* y registra el catálogo fijo de job types. Es idempotente: lo
// que ya existe se deja como está.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: cfg.App.Name})

	if cfg.Admin.Password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD es requerido para el seed")
	}

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	jobTypeRepo := postgres.NewJobTypeRepository(pool)

	existing, err := userRepo.GetByUsername(ctx, cfg.Admin.Username)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	}
	if existing != nil {
		log.Info().Str("username", cfg.Admin.Username).Msg("el admin ya existe, sin cambios")
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password del admin")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Username:     cfg.Admin.Username,
			PasswordHash: string(hash),
			FullName:     "Administrator",
			Email:        cfg.Admin.Email,
			Role:         entity.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		log.Info().Str("username", admin.Username).Msg("usuario admin creado")
	}

	created := 0
	for _, jt := range timesheet.BuiltinJobTypes() {
		jt.ID = uuid.New().String()
		jt.CreatedAt = time.Now()
		err := jobTypeRepo.Create(ctx, &jt)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrConflict):
			// ya registrado en una corrida anterior
		default:
			log.Fatal().Err(err).Str("code", jt.Code).Msg("registrar job type")
		}
	}
	log.Info().Int("created", created).Msg("catálogo de job types registrado")
}
