// Package config loads runtime settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// ErrMissingTableNames is returned when the DynamoDB backend is selected
// without every table name set.
var ErrMissingTableNames = errors.New("one or more DynamoDB table name environment variables are not set")

type Config struct {
	Storage           string
	WalletsTable      string
	TransactionsTable string
	MatchesTable      string

	// NotifyQueueURL is the SQS queue of the push service. Empty disables notifications.
	NotifyQueueURL string

	HTTPPort string
	LogLevel slog.Level

	// AutoStatusInterval is how often cmd/app runs the status job. Zero disables it.
	AutoStatusInterval time.Duration
	// MatchCompleteAfter is passed to the match engine. Zero disables auto-completion.
	MatchCompleteAfter time.Duration
	StaleDepositAge    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env, if any, and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset values.
func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Storage:            strings.ToLower(p.str("STORAGE", StorageDynamoDB)),
		WalletsTable:       getenv("DYNAMODB_WALLETS_TABLE_NAME"),
		TransactionsTable:  getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		MatchesTable:       getenv("DYNAMODB_MATCHES_TABLE_NAME"),
		NotifyQueueURL:     getenv("NOTIFY_QUEUE_URL"),
		HTTPPort:           p.str("HTTP_PORT", "8080"),
		LogLevel:           p.level("LOG_LEVEL", slog.LevelInfo),
		AutoStatusInterval: p.duration("AUTO_STATUS_INTERVAL", 0),
		MatchCompleteAfter: p.duration("MATCH_COMPLETE_AFTER", 0),
		StaleDepositAge:    p.duration("STALE_DEPOSIT_AGE", 30*time.Minute),
		RateLimitRPS:       p.float("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     p.int("RATE_LIMIT_BURST", 20),
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}

	switch cfg.Storage {
	case StorageMemory:
	case StorageDynamoDB:
		if cfg.WalletsTable == "" || cfg.TransactionsTable == "" || cfg.MatchesTable == "" {
			return nil, ErrMissingTableNames
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE backend %q", cfg.Storage)
	}

	return cfg, nil
}

// NewLogger returns a JSON logger at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be a non-negative duration", key, v))
		return def
	}
	return d
}

func (p *parser) float(key string, def float64) float64 {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be a positive number", key, v))
		return def
	}
	return f
}

func (p *parser) int(key string, def int) int {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be a positive integer", key, v))
		return def
	}
	return n
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	v := p.getenv(key)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q", key, v))
		return def
	}
	return l
}
