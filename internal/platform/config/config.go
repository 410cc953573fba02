// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env.local'
file is loaded first with 'joho/godotenv' when present; real environment
variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/revenuegear/internal/reader"
)

// LocalEnvFile is the optional dotenv file read before parsing.
const LocalEnvFile = ".env.local"

// Config holds all runtime configuration for the RevenueGear API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Admin identity
	JWTPrivKeyPath    string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath     string `env:"JWT_PUBLIC_KEY_PATH,required"`
	AdminUsername     string `env:"ADMIN_USERNAME"      envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`

	// Mail relay (names kept from the original Next.js route)
	SMTPHost         string `env:"SMTP_HOST"          envDefault:"smtp.gmail.com"`
	SMTPPort         int    `env:"SMTP_PORT"          envDefault:"587"`
	EmailUser        string `env:"EMAIL_USER"`
	EmailPassword    string `env:"EMAIL_PASSWORD"`
	ContactRecipient string `env:"CONTACT_RECIPIENT,required,notEmpty"`
	MailtoRecipient  string `env:"MAILTO_RECIPIENT"`

	// Decks
	DeckDir     string `env:"DECK_DIR"`
	DefaultDeck string `env:"DEFAULT_DECK" envDefault:"is-this-you"`

	// Reader timings
	ReaderDebounce time.Duration `env:"READER_DEBOUNCE" envDefault:"500ms"`
	ReaderFlip     time.Duration `env:"READER_FLIP"     envDefault:"600ms"`
	ReaderOpen     time.Duration `env:"READER_OPEN"     envDefault:"1s"`
	ReaderClose    time.Duration `env:"READER_CLOSE"    envDefault:"500ms"`
	SessionTTL     time.Duration `env:"SESSION_TTL"     envDefault:"30m"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"revenuegear.app"`
	ExtraOrigins        string `env:"EXTRA_ORIGINS"`
}

// Load reads [LocalEnvFile] if present and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(LocalEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read %s: %w", LocalEnvFile, err)
	}
	return Parse()
}

// Parse maps the current environment onto a [Config] without touching dotenv files.
func Parse() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MailtoRecipient == "" {
		cfg.MailtoRecipient = cfg.ContactRecipient
	}

	// Without credentials the relay only logs leads.
	if cfg.IsProduction() && (cfg.EmailUser == "" || cfg.EmailPassword == "") {
		return nil, errors.New("config: EMAIL_USER and EMAIL_PASSWORD are required in production")
	}

	if err := cfg.Timing().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Timing returns the reader timings configured for this process.
func (c *Config) Timing() reader.Timing {
	return reader.Timing{
		Debounce: c.ReaderDebounce,
		Flip:     c.ReaderFlip,
		Open:     c.ReaderOpen,
		Close:    c.ReaderClose,
	}
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigin reports whether a browser origin may call the API.
// It accepts the configured suffix and any exact match in EXTRA_ORIGINS.
func (c *Config) AllowedOrigin(origin string) bool {
	if c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix) {
		return true
	}
	for _, extra := range strings.Split(c.ExtraOrigins, ",") {
		if extra = strings.TrimSpace(extra); extra != "" && extra == origin {
			return true
		}
	}
	return false
}
