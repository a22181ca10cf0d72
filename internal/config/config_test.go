package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("SCORING_API_URL", "https://scorer.example.com/api/predict")
	os.Setenv("SCORING_MAX_ATTEMPTS", "3")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("SCORING_API_URL")
		os.Unsetenv("SCORING_MAX_ATTEMPTS")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "https://scorer.example.com/api/predict", cfg.Scoring.EndpointURL)
	assert.Equal(t, 3, cfg.Scoring.MaxAttempts)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SCORING_API_URL", "SCORING_TIMEOUT_SEC", "MAX_TEXT_LENGTH", "PIPELINE_TIMEOUT_SEC", "NOTIFY_QUEUE_CAP"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Empty(t, cfg.Scoring.EndpointURL)
	assert.Equal(t, 30, cfg.Scoring.TimeoutSec)
	assert.Equal(t, 5, cfg.Scoring.MaxAttempts)
	assert.Equal(t, 1, cfg.Scoring.BaseDelaySec)
	assert.Equal(t, 5000, cfg.Pipeline.MaxTextLength)
	assert.Equal(t, int64(5*1024*1024), cfg.Pipeline.MaxUploadBytes)
	assert.Equal(t, 64, cfg.Pipeline.NotifyQueueCap)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
