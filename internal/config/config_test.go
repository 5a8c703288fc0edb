package config_test

import (
	"testing"
	"time"

	"github.com/nfrund/friends/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.FromEnv(envOf(map[string]string{
			"API_BASE_URL":   "http://backend:8000",
			"SESSION_SECRET": "secret",
		}))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.GetServerAddr())
		assert.Equal(t, "http://backend:8000", cfg.GetAPIBaseURL())
		assert.Equal(t, time.Duration(0), cfg.GetAPITimeout(), "no timeout unless configured")
		assert.Equal(t, "ru", cfg.GetLocale())
		assert.Equal(t, "text", cfg.GetLogFormat())
		assert.False(t, cfg.GetSecureCookies())
		assert.Empty(t, cfg.GetLocalesDir())
	})

	t.Run("reads overrides", func(t *testing.T) {
		cfg, err := config.FromEnv(envOf(map[string]string{
			"SERVER_ADDR":    ":9090",
			"API_BASE_URL":   "http://backend:8000",
			"API_TIMEOUT":    "5s",
			"SESSION_SECRET": "secret",
			"SECURE_COOKIES": "true",
			"APP_LOCALE":     "en",
			"LOCALES_DIR":    "/etc/friends/locales",
			"LOG_FORMAT":     "json",
		}))
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.ServerAddr)
		assert.Equal(t, 5*time.Second, cfg.APITimeout)
		assert.True(t, cfg.SecureCookies)
		assert.Equal(t, "en", cfg.Locale)
		assert.Equal(t, "/etc/friends/locales", cfg.LocalesDir)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("reports missing required values", func(t *testing.T) {
		_, err := config.FromEnv(envOf(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API_BASE_URL")
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("rejects a bad timeout", func(t *testing.T) {
		_, err := config.FromEnv(envOf(map[string]string{
			"API_BASE_URL":   "http://backend:8000",
			"SESSION_SECRET": "secret",
			"API_TIMEOUT":    "soon",
		}))
		assert.ErrorContains(t, err, "API_TIMEOUT")
	})
}
