// Package config loads the service configuration from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const PRODUCTION = "production"

// LOCAL_ENV_FILE is loaded outside production. Hosted deployments inject their settings directly.
const LOCAL_ENV_FILE = ".env.local"

// Config holds the application configuration. The service account itself is not part of it:
// credentials are resolved per request.
type Config struct {
	Env            string        `envconfig:"APP_ENV" default:"development"`
	Bind           string        `envconfig:"BIND_ADDRESS" default:":8080"`
	MaxConnections int           `envconfig:"MAX_CONNECTIONS" default:"64"`
	SheetID        string        `envconfig:"GOOGLE_SHEET_ID"`
	PublicSheetURL string        `envconfig:"PUBLIC_SHEET_URL"`
	LiveDataSheet  string        `envconfig:"LIVE_DATA_SHEET" default:"live_data"`
	AlertSheets    []string      `envconfig:"ALERT_SHEETS" default:"alerts_log,Alerts,alerts"`
	AlertLimit     int           `envconfig:"ALERT_LIMIT" default:"20"`
	Timeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	SheetsEndpoint string        `envconfig:"SHEETS_ENDPOINT"`
	TokenURL       string        `envconfig:"GOOGLE_TOKEN_URL"`
	Debug          bool          `envconfig:"DEBUG" default:"false"`
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithEnvFile loads configuration from a .env file
func WithEnvFile(path string) Option {
	return func(c *Config) error {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}

		return envconfig.Process("", c)
	}
}

func WithBind(bind string) Option {
	return func(c *Config) error {
		if bind != "" {
			c.Bind = bind
		}
		return nil
	}
}

func WithDebug(debug bool) Option {
	return func(c *Config) error {
		c.Debug = c.Debug || debug
		return nil
	}
}

// NewConfig creates a new validated Config instance
func NewConfig(opts ...Option) (*Config, error) {
	var cfg Config

	if os.Getenv("APP_ENV") != PRODUCTION {
		if err := godotenv.Load(LOCAL_ENV_FILE); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %v: %w", LOCAL_ENV_FILE, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == PRODUCTION
}

// validate only checks values that are set. Handlers report missing sheet settings themselves
// so that one deployment can serve the public CSV and the service account endpoints.
func (c *Config) validate() error {
	if c.PublicSheetURL != "" {
		if _, err := url.ParseRequestURI(c.PublicSheetURL); err != nil {
			return fmt.Errorf("invalid PUBLIC_SHEET_URL: %s", c.PublicSheetURL)
		}
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("MAX_CONNECTIONS must be at least 1")
	}

	if c.AlertLimit < 0 {
		return fmt.Errorf("ALERT_LIMIT must not be negative")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	for i, s := range c.AlertSheets {
		c.AlertSheets[i] = strings.TrimSpace(s)
	}

	return nil
}
