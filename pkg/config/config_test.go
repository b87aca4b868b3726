package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func tables() map[string]string {
	return map[string]string{
		"DYNAMODB_WALLETS_TABLE_NAME":      "wallets",
		"DYNAMODB_TRANSACTIONS_TABLE_NAME": "transactions",
		"DYNAMODB_MATCHES_TABLE_NAME":      "matches",
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := FromEnv(env(tables()))

		require.NoError(t, err)
		assert.Equal(t, StorageDynamoDB, cfg.Storage)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Zero(t, cfg.AutoStatusInterval)
		assert.Zero(t, cfg.MatchCompleteAfter)
		assert.Equal(t, 30*time.Minute, cfg.StaleDepositAge)
		assert.Equal(t, 10.0, cfg.RateLimitRPS)
		assert.Equal(t, 20, cfg.RateLimitBurst)
		assert.Empty(t, cfg.NotifyQueueURL)
	})

	t.Run("Overrides", func(t *testing.T) {
		values := tables()
		values["HTTP_PORT"] = "9090"
		values["LOG_LEVEL"] = "debug"
		values["AUTO_STATUS_INTERVAL"] = "1m"
		values["MATCH_COMPLETE_AFTER"] = "2h"
		values["RATE_LIMIT_RPS"] = "2.5"
		values["NOTIFY_QUEUE_URL"] = "https://sqs.example/queue"

		cfg, err := FromEnv(env(values))

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, time.Minute, cfg.AutoStatusInterval)
		assert.Equal(t, 2*time.Hour, cfg.MatchCompleteAfter)
		assert.Equal(t, 2.5, cfg.RateLimitRPS)
		assert.Equal(t, "https://sqs.example/queue", cfg.NotifyQueueURL)
	})

	t.Run("Missing Table Names", func(t *testing.T) {
		values := tables()
		delete(values, "DYNAMODB_MATCHES_TABLE_NAME")

		_, err := FromEnv(env(values))

		assert.ErrorIs(t, err, ErrMissingTableNames)
	})

	t.Run("Memory Backend Needs No Tables", func(t *testing.T) {
		cfg, err := FromEnv(env(map[string]string{"STORAGE": "Memory"}))

		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.Storage)
	})

	t.Run("Unknown Backend", func(t *testing.T) {
		_, err := FromEnv(env(map[string]string{"STORAGE": "postgres"}))

		assert.Error(t, err)
	})

	t.Run("Invalid Values Are Reported Together", func(t *testing.T) {
		values := tables()
		values["AUTO_STATUS_INTERVAL"] = "soon"
		values["RATE_LIMIT_BURST"] = "-1"

		_, err := FromEnv(env(values))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "AUTO_STATUS_INTERVAL")
		assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
	})
}
