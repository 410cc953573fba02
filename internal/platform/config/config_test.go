// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/revenuegear")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("CONTACT_RECIPIENT", "sales@revenuegear.app")
}

/*
TestParse_Defaults verifies reader timings and mail defaults.
*/
func TestParse_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 500*time.Millisecond, cfg.ReaderDebounce)
	assert.Equal(t, 600*time.Millisecond, cfg.ReaderFlip)
	assert.Equal(t, time.Second, cfg.ReaderOpen)
	assert.Equal(t, 500*time.Millisecond, cfg.ReaderClose)
	assert.Equal(t, "sales@revenuegear.app", cfg.MailtoRecipient)
	assert.Equal(t, "is-this-you", cfg.DefaultDeck)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestParse_MissingRequired fails fast when a required variable is absent.
*/
func TestParse_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("CONTACT_RECIPIENT", "")

	_, err := config.Parse()
	assert.Error(t, err)
}

/*
TestParse_InvalidTiming rejects a zero flip duration.
*/
func TestParse_InvalidTiming(t *testing.T) {
	setRequired(t)
	t.Setenv("READER_FLIP", "0s")

	_, err := config.Parse()
	assert.Error(t, err)
}

/*
TestParse_ProductionNeedsMailCredentials verifies the relay cannot fall back
to the log mailer in production.

1. Production without credentials fails.
2. Adding both credentials passes.
*/
func TestParse_ProductionNeedsMailCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASSWORD", "")

	_, err := config.Parse()
	assert.ErrorContains(t, err, "EMAIL_USER")

	t.Setenv("EMAIL_USER", "relay@revenuegear.app")
	t.Setenv("EMAIL_PASSWORD", "app-password")

	cfg, err := config.Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

/*
TestAllowedOrigin covers suffix and explicit origins.
*/
func TestAllowedOrigin(t *testing.T) {
	cfg := &config.Config{
		AllowedOriginSuffix: "revenuegear.app",
		ExtraOrigins:        "http://localhost:3000, https://preview.vercel.app",
	}

	assert.True(t, cfg.AllowedOrigin("https://www.revenuegear.app"))
	assert.True(t, cfg.AllowedOrigin("https://preview.vercel.app"))
	assert.False(t, cfg.AllowedOrigin("https://evil.example"))
}
