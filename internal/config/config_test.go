package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("FIREBASE_WEB_API_KEY", "firebase-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModeFirebase, cfg.AuthMode)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, []int{429, 503}, cfg.RetryableStatuses)
	assert.Equal(t, 25*time.Second, cfg.UpstreamDeadline)
	assert.Equal(t, 10*time.Second, cfg.IdentityTimeout)
	assert.Len(t, cfg.AllowedOrigins, 5)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
	assert.False(t, cfg.RequireOrigin)
	assert.False(t, cfg.LimiterEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", " https://staging.example.com/ ,https://app.example.com")
	t.Setenv("MAX_RETRIES", "4")
	t.Setenv("RETRY_BASE_DELAY", "50ms")
	t.Setenv("RETRYABLE_STATUSES", "429,500,503")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("USER_REQUEST_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://staging.example.com", "https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, []int{429, 500, 503}, cfg.RetryableStatuses)
	assert.True(t, cfg.LimiterEnabled())
}

func TestLoad_MissingGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("FIREBASE_WEB_API_KEY", "firebase-key")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			GeminiAPIKey:      "k",
			AuthMode:          AuthModeFirebase,
			FirebaseWebAPIKey: "f",
			IdentityTimeout:   time.Second,
			MaxRetries:        2,
			RetryBaseDelay:    time.Millisecond,
			UpstreamDeadline:  time.Second,
			UserLimitWindow:   time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid firebase", func(*Config) {}, false},
		{"firebase without key", func(c *Config) { c.FirebaseWebAPIKey = "" }, true},
		{"none mode without key", func(c *Config) { c.AuthMode = AuthModeNone; c.FirebaseWebAPIKey = "" }, false},
		{"unknown mode", func(c *Config) { c.AuthMode = "saml" }, true},
		{"zero identity timeout", func(c *Config) { c.IdentityTimeout = 0 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"zero deadline", func(c *Config) { c.UpstreamDeadline = 0 }, true},
		{"limit without window", func(c *Config) { c.UserRequestLimit = 5; c.UserLimitWindow = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
