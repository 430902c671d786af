package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", "../.env"}

// Config holds the probe and stand-in server configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`

	BaseURL    string `env:"PROBE_BASE_URL" envDefault:"http://127.0.0.1:8000" validate:"required,url"`
	LoginPath  string `env:"PROBE_LOGIN_PATH" envDefault:"/api/login/" validate:"required,startswith=/"`
	TargetPath string `env:"PROBE_TARGET_PATH" envDefault:"/api/authors" validate:"required,startswith=/"`
	Username   string `env:"PROBE_USERNAME" envDefault:"useris" validate:"required"`
	Password   string `env:"PROBE_PASSWORD" envDefault:"labas" validate:"required"`
	Page       int    `env:"PROBE_PAGE" envDefault:"1" validate:"gte=1"`
	Search     string `env:"PROBE_SEARCH" envDefault:"80"`

	PayloadName    string `env:"PROBE_PAYLOAD_NAME" envDefault:"John"`
	PayloadSurname string `env:"PROBE_PAYLOAD_SURNAME" envDefault:"810"`
	SendGetBody    bool   `env:"PROBE_SEND_GET_BODY" envDefault:"true"`

	Delay       time.Duration `env:"PROBE_DELAY" envDefault:"1s"`
	HTTPTimeout time.Duration `env:"PROBE_HTTP_TIMEOUT" envDefault:"0s"`

	MockPort     int    `env:"MOCKAPI_PORT" envDefault:"8000" validate:"gte=1,lte=65535"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"secret"`
	MockUsername string `env:"MOCKAPI_USERNAME" envDefault:"useris"`
	MockPassword string `env:"MOCKAPI_PASSWORD" envDefault:"labas"`
}

// NewConfig loads the first available .env file and parses the process environment.
func NewConfig() (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints; call it after flag overrides are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Delay < 0 {
		return errors.New("invalid config: PROBE_DELAY must not be negative")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("invalid config: PROBE_HTTP_TIMEOUT must not be negative")
	}
	return nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}

// LoginURL is BaseURL joined with LoginPath.
func (c *Config) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.LoginPath
}

// TargetURL is BaseURL joined with TargetPath plus the page and search query.
func (c *Config) TargetURL() string {
	q := url.Values{}
	q.Set("page", fmt.Sprint(c.Page))
	q.Set("search", c.Search)
	return strings.TrimRight(c.BaseURL, "/") + c.TargetPath + "?" + q.Encode()
}
