// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import "context"

// Repository defines the data access contract for decks.
//
// # Consistency
//
// Spreads are stored with their deck and never addressed on their own;
// an upsert replaces the whole deck.
type Repository interface {
	// List returns every stored deck ordered by slug.
	List(ctx context.Context) ([]*Deck, error)

	// FindBySlug returns the deck with the given slug.
	//
	// It returns a NOT_FOUND [apperr.AppError] when absent.
	FindBySlug(ctx context.Context, slug string) (*Deck, error)

	// Upsert inserts or replaces a deck and sets its UpdatedAt.
	Upsert(ctx context.Context, d *Deck) error
}
