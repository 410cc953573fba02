// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

It holds reader session snapshots: short-lived, versioned records with a
TTL equal to the session idle timeout, so a visitor whose session was
evicted from one API instance can be resumed by another.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Settings tunes the client built by [NewClient]. Zero fields take defaults
// sized for session snapshots: small values, many short round trips.
type Settings struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (settings Settings) apply(options *redis.Options) {
	options.PoolSize = cmpOr(settings.PoolSize, 10)
	options.MinIdleConns = max(1, options.PoolSize/5)
	options.MaxIdleConns = max(options.MinIdleConns, options.PoolSize/2)
	options.DialTimeout = cmpOr(settings.DialTimeout, 3*time.Second)
	options.ReadTimeout = cmpOr(settings.ReadTimeout, 2*time.Second)
	options.WriteTimeout = cmpOr(settings.WriteTimeout, 2*time.Second)
}

func cmpOr[T int | time.Duration](value, fallback T) T {
	if value > 0 {
		return value
	}
	return fallback
}

// NewClient parses settings.URL, connects and pings before returning.
func NewClient(context stdctx.Context, settings Settings, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	settings.apply(options)

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping checks the connection within a short fixed deadline.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
