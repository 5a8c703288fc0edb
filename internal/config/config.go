package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes configuration values to the rest of the application.
type Provider interface {
	GetServerAddr() string
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetSessionSecret() string
	GetSecureCookies() bool
	GetLocale() string
	GetLocalesDir() string
	GetLogFormat() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	APIBaseURL    string
	APITimeout    time.Duration
	SessionSecret string
	SecureCookies bool
	Locale        string
	LocalesDir    string
	LogFormat     string
}

// New loads configuration from the environment, reading a .env file first if
// one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		ServerAddr:    valueOr(getenv("SERVER_ADDR"), ":8080"),
		APIBaseURL:    strings.TrimSpace(getenv("API_BASE_URL")),
		SessionSecret: getenv("SESSION_SECRET"),
		Locale:        valueOr(getenv("APP_LOCALE"), "ru"),
		LocalesDir:    strings.TrimSpace(getenv("LOCALES_DIR")),
		LogFormat:     valueOr(getenv("LOG_FORMAT"), "text"),
	}

	if raw := strings.TrimSpace(getenv("API_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse API_TIMEOUT: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("API_TIMEOUT must not be negative, got %s", d)
		}
		cfg.APITimeout = d
	}

	if raw := strings.TrimSpace(getenv("SECURE_COOKIES")); raw != "" {
		cfg.SecureCookies = raw == "1" || strings.EqualFold(raw, "true")
	}

	var missing []string
	if cfg.APIBaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return nil, errors.New("required environment variables are not set: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetServerAddr() string        { return c.ServerAddr }
func (c *Config) GetAPIBaseURL() string        { return c.APIBaseURL }
func (c *Config) GetAPITimeout() time.Duration { return c.APITimeout }
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetSecureCookies() bool       { return c.SecureCookies }
func (c *Config) GetLocale() string            { return c.Locale }
func (c *Config) GetLocalesDir() string        { return c.LocalesDir }
func (c *Config) GetLogFormat() string         { return c.LogFormat }
