package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/credprobe/credprobe/internal/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL targets github.com; GitHub Enterprise Server
	// installs override it with their /api/v3 root.
	DefaultBaseURL = "https://api.github.com"

	DefaultTimeout     = 10 * time.Minute
	DefaultConcurrency = 5
)

// Config holds everything one audit run needs. Loaded once at startup
// from environment (plus optional .env), validated before any network
// call.
type Config struct {
	Token      string        // API credential (GITHUB_TOKEN)
	Company    string        // target organization login (COMPANY)
	Enterprise string        // optional enterprise slug (ENTERPRISE_SLUG)
	BaseURL    string        // API root (GITHUB_BASE_URL)
	Proxy      string        // optional proxy URL (HTTPS_PROXY honored by transport)
	Timeout    time.Duration // overall run deadline (AUDIT_TIMEOUT)

	Concurrency int // bounded worker pool size shared by both engines

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, consulting a .env file
// in the working directory when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded environment from .env file")
	}

	cfg := &Config{
		Token:      strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		Company:    strings.TrimSpace(os.Getenv("COMPANY")),
		Enterprise: strings.TrimSpace(os.Getenv("ENTERPRISE_SLUG")),
		BaseURL:    strings.TrimSpace(os.Getenv("GITHUB_BASE_URL")),
		Proxy:      strings.TrimSpace(os.Getenv("HTTPS_PROXY")),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),

		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if raw := os.Getenv("AUDIT_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUDIT_TIMEOUT %q: %w", raw, err)
		}
		cfg.Timeout = d
	}

	if raw := os.Getenv("AUDIT_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid AUDIT_CONCURRENCY %q", raw)
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}

// Validate fails fast on configuration errors that would otherwise
// surface mid-run. Called before any probing starts.
func (c *Config) Validate() error {
	if c.Token == "" {
		return apierrors.ErrMissingToken
	}
	if c.Company == "" {
		return apierrors.ErrMissingCompany
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
