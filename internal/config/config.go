// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"OCMS_DB_PATH" envDefault:"./data/ocms.db"`
	ServerHost string `env:"OCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"OCMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"OCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"OCMS_LOG_LEVEL" envDefault:"info"`

	// Site layout. Managed file paths are stored relative to SiteRoot.
	SiteRoot   string `env:"OCMS_SITE_ROOT" envDefault:"."`
	UploadsDir string `env:"OCMS_UPLOADS_DIR" envDefault:"uploads"`

	// Lost files
	LostFilesExclude  []string `env:"OCMS_LOSTFILES_EXCLUDE" envSeparator:","`
	LostFilesSchedule string   `env:"OCMS_LOSTFILES_SCHEDULE"`                             // Cron expression; empty disables the job
	LostFilesRefresh  bool     `env:"OCMS_LOSTFILES_REFRESH_REFINDEX" envDefault:"false"` // Rebuild refindex before scheduled scans

	// Localization
	LabelPrefix       bool     `env:"OCMS_LOCALIZE_LABEL_PREFIX" envDefault:"true"`
	HideNewRecords    bool     `env:"OCMS_LOCALIZE_HIDE_NEW" envDefault:"false"`
	SanitizeCopies    bool     `env:"OCMS_LOCALIZE_SANITIZE" envDefault:"false"`
	TranslatablePaths []string `env:"OCMS_LOCALIZE_PAYLOAD_FIELDS" envSeparator:","` // gjson paths inside record payloads
	AdminLanguage     string   `env:"OCMS_ADMIN_LANGUAGE" envDefault:"en"`

	// API
	APIRateLimit float64 `env:"OCMS_API_RATE_LIMIT" envDefault:"10"` // Requests per second per client IP
	APIRateBurst int     `env:"OCMS_API_RATE_BURST" envDefault:"20"`

	// Cache configuration
	RedisURL    string `env:"OCMS_REDIS_URL"`                       // Optional Redis URL for the language cache
	CachePrefix string `env:"OCMS_CACHE_PREFIX" envDefault:"ocms:"` // Redis key prefix
	CacheTTL    int    `env:"OCMS_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds

	// Seeding configuration
	DoSeed bool `env:"OCMS_DO_SEED" envDefault:"false"` // Seed demo content
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheDuration returns CacheTTL as a time.Duration.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// DataDir is the directory holding the database and lock files.
func (c Config) DataDir() string {
	return filepath.Dir(c.DBPath)
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.LostFilesExclude = trimAll(cfg.LostFilesExclude)
	cfg.TranslatablePaths = trimAll(cfg.TranslatablePaths)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("OCMS_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	if c.UploadsDir == "" {
		errs = append(errs, errors.New("OCMS_UPLOADS_DIR must not be empty"))
	} else if filepath.IsAbs(c.UploadsDir) || strings.HasPrefix(filepath.Clean(c.UploadsDir), "..") {
		errs = append(errs, fmt.Errorf("OCMS_UPLOADS_DIR must be relative to OCMS_SITE_ROOT, got %q", c.UploadsDir))
	}
	if c.APIRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("OCMS_API_RATE_LIMIT must be positive, got %v", c.APIRateLimit))
	}
	if c.APIRateBurst < 1 {
		errs = append(errs, fmt.Errorf("OCMS_API_RATE_BURST must be at least 1, got %d", c.APIRateBurst))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("OCMS_CACHE_TTL must not be negative, got %d", c.CacheTTL))
	}
	if c.LostFilesSchedule != "" {
		if _, err := cron.ParseStandard(c.LostFilesSchedule); err != nil {
			errs = append(errs, fmt.Errorf("OCMS_LOSTFILES_SCHEDULE is not a valid cron expression: %w", err))
		}
	}

	return errors.Join(errs...)
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
