package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"
	// EnvDevelopment represents the local development environment.
	EnvDevelopment = "development"

	// DefaultBaseOrigin is the podcast backend used by the reference deployment.
	DefaultBaseOrigin = "http://localhost:5001"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env       string `envconfig:"ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	BasePath  string `envconfig:"BASE_PATH" default:"/"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"./public"`

	// Backend settings
	BaseOrigin string `envconfig:"PODCAST_BASE_ORIGIN" default:"http://localhost:5001"`

	// Security settings
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8080"`
	HSTSMaxAge     int      `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode        string   `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	LoadDotEnv()

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}
}

// Validate checks the values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if err := ValidateBaseOrigin(c.BaseOrigin); err != nil {
		return err
	}

	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("invalid BASE_PATH %q: must start with /", c.BasePath)
	}

	return nil
}

// ValidateBaseOrigin requires an absolute http(s) origin such as http://localhost:5001.
func ValidateBaseOrigin(origin string) error {
	if strings.TrimSpace(origin) == "" {
		return errors.New("base origin is required")
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid base origin %q: %w", origin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base origin %q: scheme must be http or https", origin)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid base origin %q: missing host", origin)
	}

	return nil
}

// BuildCSP constructs Content Security Policy based on mode.
// mediaOrigin is the podcast backend the detail view streams audio from.
func BuildCSP(mode, mediaOrigin string) string {
	media := "media-src 'self'"
	if mediaOrigin != "" {
		media += " " + strings.TrimRight(mediaOrigin, "/")
	}

	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			media + "; " +
			"connect-src 'self'; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; " +
		media
}
