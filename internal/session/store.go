// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// Repository persists session snapshots.
type Repository interface {
	// Save stores rec unless a snapshot with an equal or newer version is
	// already stored. It reports whether rec was written.
	Save(ctx context.Context, rec Record, ttl time.Duration) (bool, error)

	// Load returns the stored snapshot for id.
	//
	// It returns a NOT_FOUND [apperr.AppError] when absent or expired.
	Load(ctx context.Context, id string) (*Record, error)

	// Delete removes the snapshot for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
