// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, reader timings and cross-cutting keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Reader: Page-turn timings and gesture thresholds.
  - Security: JWT issuer and admin token lifetime.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "revenuegear-api"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// MaxRequestBodyBytes caps JSON payloads accepted by any handler.
	MaxRequestBodyBytes = 64 << 10
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// ContactRateLimitRPS allows five contact submissions per minute per IP.
	ContactRateLimitRPS = 5.0 / 60.0

	// ContactRateLimitBurst is the burst allowed for contact submissions.
	ContactRateLimitBurst = 3

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Reader

const (
	// ReaderDebounce is the minimum interval between two accepted navigation commands.
	ReaderDebounce = 500 * time.Millisecond

	// ReaderFlip is the full page-turn duration, split into leave and settle halves.
	ReaderFlip = 600 * time.Millisecond

	// ReaderOpen is the duration of the opening animation.
	ReaderOpen = 1000 * time.Millisecond

	// ReaderClose is the delay before the reader closes after the last spread.
	ReaderClose = 500 * time.Millisecond

	// SwipeThreshold is the horizontal distance, in device-independent pixels,
	// a gesture must exceed to count as a swipe.
	SwipeThreshold = 50.0

	// SessionSweepInterval is how often idle reader sessions are collected.
	SessionSweepInterval = 1 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "revenuegear.app"

	// AdminTokenTTL is the lifetime of an admin access token.
	AdminTokenTTL = 12 * time.Hour

	// AdminPasswordMinLength applies when hashing a new admin password.
	AdminPasswordMinLength = 10
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldSuccess = "success"
)

// # Database Schemas

const (
	SchemaContent   = "content"
	SchemaMarketing = "marketing"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixReaderSession = "reader:session:"
)
