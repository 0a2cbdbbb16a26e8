package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"postboard/internal/common/constants"
	commonerrors "postboard/internal/common/errors"
)

type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	SessionSecret  string        `env:"SESSION_SECRET,required"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`

	NewsAPIKey  string        `env:"NEWS_API_KEY"`
	NewsBaseURL string        `env:"NEWS_API_URL" envDefault:"https://newsapi.org/v2"`
	NewsCountry string        `env:"NEWS_COUNTRY" envDefault:"us"`
	NewsTimeout time.Duration `env:"NEWS_TIMEOUT" envDefault:"10s"`

	ProfilePicsDir string `env:"PROFILE_PICS_DIR" envDefault:"static/profile_pics"`
}

// Load reads configuration from the environment, pulling in a local
// .env file first when one exists.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if len(cfg.SessionSecret) < constants.SessionSecretMinLen {
		return Config{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidSessionSecret, len(cfg.SessionSecret))
	}

	return cfg, nil
}
