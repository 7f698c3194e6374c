package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// mongoPasswordPlaceholder is the token left in connection strings copied
// from the Atlas console before the real password is filled in.
const mongoPasswordPlaceholder = "<db_password>"

type Config struct {
	Port        string        `env:"PORT,         default=3000"`
	Env         string        `env:"ENV,          default=development"`
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTTTL      time.Duration `env:"JWT_TTL,      default=24h"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	FrontendURL string        `env:"FRONTEND_URL"`
	BodyLimit   string        `env:"BODY_LIMIT,   default=50M"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	Seed     SeedConfig
}

type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGO_DB,              default=portfolio"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT, default=10s"`
}

// RedisConfig is optional; an empty Addr disables Redis-backed features.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type ThrottleConfig struct {
	MaxFailures int           `env:"LOGIN_MAX_FAILURES,   default=10"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

// SeedConfig describes the superuser created by cmd/seed-admin.
type SeedConfig struct {
	Email     string `env:"SEED_EMAIL,      default=admin@nhanstudio.com"`
	Password  string `env:"SEED_PASSWORD"`
	FirstName string `env:"SEED_FIRST_NAME, default=Admin"`
	LastName  string `env:"SEED_LAST_NAME,  default=User"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every server process needs.
func (c *Config) Validate() error {
	var errs []error
	switch {
	case strings.TrimSpace(c.Mongo.URI) == "":
		errs = append(errs, errors.New("MONGODB_URI is required"))
	case strings.Contains(c.Mongo.URI, mongoPasswordPlaceholder):
		errs = append(errs, fmt.Errorf("MONGODB_URI still contains the %s placeholder", mongoPasswordPlaceholder))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// FrontendOrigins splits FRONTEND_URL on commas.
func (c *Config) FrontendOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	return out
}
