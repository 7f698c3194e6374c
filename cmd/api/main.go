package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nhanstudio/portfolio-api/internal/api"
	"github.com/nhanstudio/portfolio-api/internal/api/handler"
	"github.com/nhanstudio/portfolio-api/internal/core/ports"
	"github.com/nhanstudio/portfolio-api/internal/core/service"
	"github.com/nhanstudio/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/nhanstudio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/nhanstudio/portfolio-api/internal/pkg/config"
	"github.com/nhanstudio/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portfolio-api",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// --- MongoDB (fail fast on the first connect) ---
	conn := mongo.NewConnector(mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
	})
	if _, err := conn.Database(ctx); err != nil {
		log.Fatal().Err(err).Str("hint", mongo.Hint(err)).Msg("mongodb connection failed")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	userRepo := mongo.NewUserRepository(conn)
	projectRepo := mongo.NewProjectRepository(conn)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := projectRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create project indexes")
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error {
			if _, err := conn.Database(ctx); err != nil {
				return err
			}
			return conn.Ping(ctx)
		},
	}

	// --- Redis (optional) ---
	var (
		throttle ports.LoginThrottle
		rdb      *goredis.Client
	)
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		} else {
			throttle = redis.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens, throttle, logger.Component("auth"))
	projectService := service.NewProjectService(projectRepo, userRepo, logger.Component("projects"))

	e := api.NewRouter(api.Deps{
		Logger:         log,
		AuthService:    authService,
		ProjectService: projectService,
		Tokens:         tokens,
		Checks:         checks,
		AllowedOrigins: cfg.FrontendOrigins(),
		Production:     cfg.IsProduction(),
		BodyLimit:      cfg.BodyLimit,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := conn.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}

	log.Info().Msg("shutdown complete")
}
