// Command checkdb verifies that MONGODB_URI is reachable and prints a hint
// when it is not.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nhanstudio/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/nhanstudio/portfolio-api/internal/pkg/config"
	"github.com/nhanstudio/portfolio-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "checkdb"})

	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		log.Fatal().Msg("MONGODB_URI is not set")
	}
	if strings.Contains(cfg.Mongo.URI, "<db_password>") {
		log.Fatal().Msg("MONGODB_URI still contains the <db_password> placeholder")
	}

	log.Info().Str("uri", redact(cfg.Mongo.URI)).Msg("connecting")

	conn := mongo.NewConnector(mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
	})
	db, err := conn.Database(ctx)
	if err != nil {
		log.Error().Err(err).Msg("connection failed")
		fmt.Fprintln(os.Stderr, mongo.Hint(err))
		os.Exit(1)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	collections, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		log.Warn().Err(err).Msg("connected but could not list collections")
	}
	log.Info().
		Str("database", db.Name()).
		Strs("collections", collections).
		Msg("connection successful")
}

// redact hides the password portion of a connection string.
func redact(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return uri
	}
	user, _, _ := strings.Cut(creds, ":")
	return scheme + "://" + user + ":****@" + host
}
