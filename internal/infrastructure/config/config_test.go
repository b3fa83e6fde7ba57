package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Check server defaults
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, int64(16*1024*1024), cfg.Server.MaxBodyBytes)

		// Check model defaults
		assert.Equal(t, "local", cfg.Model.Backend)
		assert.Equal(t, "models/fraud_detection_model.json", cfg.Model.Path)

		// Check AI defaults
		assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
		assert.Equal(t, 60*time.Second, cfg.AI.Timeout)

		// Check keep-alive defaults
		assert.True(t, cfg.KeepAlive.Enabled)
		assert.Equal(t, 180*time.Second, cfg.KeepAlive.Interval)
		assert.Equal(t, "/keep-alive", cfg.KeepAlive.Path)

		// Check log defaults
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("reads from environment variables", func(t *testing.T) {
		t.Setenv("FRAUDLENS_SERVER_PORT", "9090")
		t.Setenv("FRAUDLENS_LOG_LEVEL", "debug")
		t.Setenv("FRAUDLENS_AI_TIMEOUT", "15s")
		t.Setenv("FRAUDLENS_MODEL_PATH", "/srv/model.json")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
		assert.Equal(t, "/srv/model.json", cfg.Model.Path)
	})

	t.Run("falls back to well-known variable names", func(t *testing.T) {
		t.Setenv("GOOGLE_GEMINI_API_KEY", "gemini-key")
		t.Setenv("RENDER_EXTERNAL_URL", "https://fraudlens.example.com")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "gemini-key", cfg.AI.APIKey)
		assert.True(t, cfg.AI.Configured())
		assert.Equal(t, "https://fraudlens.example.com", cfg.KeepAlive.URL)
		assert.True(t, cfg.KeepAlive.Active())
		assert.Equal(t, "https://fraudlens.example.com/keep-alive", cfg.KeepAlive.Target())
	})

	t.Run("prefixed variable wins over fallback", func(t *testing.T) {
		t.Setenv("FRAUDLENS_AI_API_KEY", "primary")
		t.Setenv("GOOGLE_GEMINI_API_KEY", "secondary")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "primary", cfg.AI.APIKey)
	})

	t.Run("rejects unknown model backend", func(t *testing.T) {
		t.Setenv("FRAUDLENS_MODEL_BACKEND", "onnx")

		_, err := Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("remote backend requires url", func(t *testing.T) {
		t.Setenv("FRAUDLENS_MODEL_BACKEND", "remote")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		t.Setenv("FRAUDLENS_SERVER_PORT", "0")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestKeepAliveConfig(t *testing.T) {
	t.Run("inactive without url", func(t *testing.T) {
		cfg := KeepAliveConfig{Enabled: true}
		assert.False(t, cfg.Active())
	})

	t.Run("inactive when disabled", func(t *testing.T) {
		cfg := KeepAliveConfig{Enabled: false, URL: "https://example.com"}
		assert.False(t, cfg.Active())
	})

	t.Run("target trims trailing slash", func(t *testing.T) {
		cfg := KeepAliveConfig{URL: "https://example.com/", Path: "/keep-alive"}
		assert.Equal(t, "https://example.com/keep-alive", cfg.Target())
	})
}
