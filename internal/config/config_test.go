package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, 15*time.Minute, cfg.PlaybackTokenTTL)
		assert.Equal(t, 3, cfg.DeviceSessionLimit)
		assert.True(t, cfg.RateLimitPlaybackEnabled)
		assert.Equal(t, "contentguard", cfg.MetricsNamespace)
	})

	t.Run("Success_TokenTTLClampedToLowerBound", func(t *testing.T) {
		t.Setenv("PLAYBACK_TOKEN_TTL_MINUTES", "1")

		cfg := Load()

		assert.Equal(t, MinPlaybackTokenTTL, cfg.PlaybackTokenTTL)
	})

	t.Run("Success_TokenTTLClampedToUpperBound", func(t *testing.T) {
		t.Setenv("PLAYBACK_TOKEN_TTL_MINUTES", "120")

		cfg := Load()

		assert.Equal(t, MaxPlaybackTokenTTL, cfg.PlaybackTokenTTL)
	})
}

func TestGetGinMode(t *testing.T) {
	t.Run("Success_DebugLevel", func(t *testing.T) {
		cfg := &Config{LogLevel: "debug"}
		assert.Equal(t, "debug", cfg.GetGinMode())
	})

	t.Run("Success_InfoLevelIsRelease", func(t *testing.T) {
		cfg := &Config{LogLevel: "info"}
		assert.Equal(t, "release", cfg.GetGinMode())
	})
}
