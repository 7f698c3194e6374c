// Command seed-admin creates the superuser account (role Me) if it does not
// exist yet. Running it again is harmless.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nhanstudio/portfolio-api/internal/core/ports"
	"github.com/nhanstudio/portfolio-api/internal/core/service"
	"github.com/nhanstudio/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/nhanstudio/portfolio-api/internal/pkg/config"
	"github.com/nhanstudio/portfolio-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed-admin"})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Seed.Password == "" {
		log.Fatal().Msg("SEED_PASSWORD is required")
	}

	conn := mongo.NewConnector(mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
	})
	defer func() { _ = conn.Close(context.Background()) }()

	users := mongo.NewUserRepository(conn)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Str("hint", mongo.Hint(err)).Msg("mongodb unavailable")
		os.Exit(1)
	}

	// Tokens are never issued here; the secret only satisfies the constructor.
	auth := service.NewAuthService(users, service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL), nil, log)
	user, created, err := auth.EnsureSeedUser(ctx, ports.SeedInput{
		FirstName: cfg.Seed.FirstName,
		LastName:  cfg.Seed.LastName,
		Email:     cfg.Seed.Email,
		Password:  cfg.Seed.Password,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to seed admin")
		os.Exit(1)
	}

	if !created {
		log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("admin already exists")
		return
	}
	log.Info().Str("email", user.Email).Str("id", user.ID).Msg("admin created")
}
