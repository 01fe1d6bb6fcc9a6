package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 15*time.Minute, cfg.JWT.ResetExpiration)
	assert.Equal(t, int64(2*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp"}, cfg.Uploads.AllowedMIMEs)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PREFIX", "/api/v2")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("JWT_EXPIRATION", "bogus")
	t.Setenv("ALLOWED_ORIGINS", "https://a.edu, https://b.edu,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v2", cfg.APIPrefix)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.edu", "https://b.edu"}, cfg.CORS.AllowedOrigins)
}
