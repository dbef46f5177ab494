package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeNone     = "none"
)

type Config struct {
	// Server
	Port       string `env:"PORT" envDefault:"8080"`
	Env        string `env:"ENV" envDefault:"development"`
	AppVersion string `env:"APP_VERSION"`
	LogDebug   bool   `env:"LOG_DEBUG" envDefault:"false"`

	// Gemini
	GeminiAPIKey  string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Caller verification
	AuthMode          string        `env:"AUTH_MODE" envDefault:"firebase"`
	FirebaseWebAPIKey string        `env:"FIREBASE_WEB_API_KEY"`
	IdentityBaseURL   string        `env:"IDENTITY_BASE_URL" envDefault:"https://identitytoolkit.googleapis.com/v1"`
	IdentityTimeout   time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://wanderly.web.app,https://wanderly.firebaseapp.com,https://wanderly-1f739.web.app,https://wanderly-1f739.firebaseapp.com,http://localhost:5173"`
	RequireOrigin  bool     `env:"REQUIRE_ORIGIN" envDefault:"false"`

	// Retry policy
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"2"`
	RetryBaseDelay    time.Duration `env:"RETRY_BASE_DELAY" envDefault:"500ms"`
	RetryableStatuses []int         `env:"RETRYABLE_STATUSES" envSeparator:"," envDefault:"429,503"`
	UpstreamDeadline  time.Duration `env:"UPSTREAM_DEADLINE" envDefault:"25s"`

	// Per-caller usage limit
	RedisURL         string        `env:"REDIS_URL"`
	UserRequestLimit int           `env:"USER_REQUEST_LIMIT" envDefault:"0"`
	UserLimitWindow  time.Duration `env:"USER_LIMIT_WINDOW" envDefault:"1h"`
}

// Load reads an optional .env file and parses the process environment.
func Load() (*Config, error) {
	// .env is optional; the hosting platform usually injects secrets directly
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the rules that span more than one variable.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeFirebase:
		if c.FirebaseWebAPIKey == "" {
			return errors.New("FIREBASE_WEB_API_KEY is required when AUTH_MODE=firebase")
		}
	case AuthModeNone:
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	if c.IdentityTimeout <= 0 {
		return fmt.Errorf("IDENTITY_TIMEOUT must be positive, got %s", c.IdentityTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must not be negative, got %s", c.RetryBaseDelay)
	}
	if c.UpstreamDeadline <= 0 {
		return fmt.Errorf("UPSTREAM_DEADLINE must be positive, got %s", c.UpstreamDeadline)
	}
	if c.UserRequestLimit < 0 {
		return fmt.Errorf("USER_REQUEST_LIMIT must not be negative, got %d", c.UserRequestLimit)
	}
	if c.UserRequestLimit > 0 && c.UserLimitWindow <= 0 {
		return errors.New("USER_LIMIT_WINDOW must be positive when USER_REQUEST_LIMIT is set")
	}
	return nil
}

// LimiterEnabled reports whether per-caller usage limiting should be wired.
func (c *Config) LimiterEnabled() bool {
	return c.RedisURL != "" && c.UserRequestLimit > 0
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
