// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import "context"

// Repository defines the data access contract for leads.
type Repository interface {
	// Create persists a new lead. The caller sets ID and Status.
	Create(ctx context.Context, lead *Lead) error

	// UpdateStatus records the relay outcome for a lead.
	UpdateStatus(ctx context.Context, id string, status Status, relayError string) error

	// List returns leads newest first and the total count.
	List(ctx context.Context, limit, offset int) ([]*Lead, int, error)
}
