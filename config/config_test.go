package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "/media/", cfg.Storage.MediaURL)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ReportTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("S3_USE_PATH_STYLE", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Second, cfg.Redis.ReportTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Storage.UsePathStyle)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}
