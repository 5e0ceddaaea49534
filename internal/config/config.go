package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQL    = "sql"

	defaultPort        = 5000
	defaultDatabaseURL = "file:tips?mode=memory&cache=shared"
)

type Config struct {
	AppEnv          string
	Port            int
	StoreDriver     string
	DatabaseURL     string
	SeedSampleData  bool
	SeedRandom      bool
	DailyResetCron  string
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// Load reads .env (if present), an optional configs/config.yaml and the
// process environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to load .env file", "err", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	return FromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("SEED_SAMPLE_DATA", true)
	v.SetDefault("SEED_RANDOM", true)
	v.SetDefault("DAILY_RESET_CRON", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
}

// FromViper builds and validates a Config from an already populated viper.
func FromViper(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(strings.TrimSpace(v.GetString("SHUTDOWN_TIMEOUT")))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT value %q: %w", v.GetString("SHUTDOWN_TIMEOUT"), err)
	}

	cfg := &Config{
		AppEnv:          strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Port:            v.GetInt("PORT"),
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		SeedSampleData:  v.GetBool("SEED_SAMPLE_DATA"),
		SeedRandom:      v.GetBool("SEED_RANDOM"),
		DailyResetCron:  strings.TrimSpace(v.GetString("DAILY_RESET_CRON")),
		CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		ShutdownTimeout: timeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.StoreDriver != StoreMemory && c.StoreDriver != StoreSQL {
		return fmt.Errorf("STORE_DRIVER must be one of: %s, %s", StoreMemory, StoreSQL)
	}
	if c.StoreDriver == StoreSQL && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty when STORE_DRIVER=%s", StoreSQL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.DailyResetCron != "" {
		if _, err := cron.ParseStandard(c.DailyResetCron); err != nil {
			return fmt.Errorf("invalid DAILY_RESET_CRON %q: %w", c.DailyResetCron, err)
		}
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
