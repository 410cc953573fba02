// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/database/schema"
	"github.com/taibuivan/revenuegear/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx. Spreads live in a JSONB column.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed deck store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectDeck = fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
	schema.ContentDeck.Slug, schema.ContentDeck.Title, schema.ContentDeck.Cover,
	schema.ContentDeck.Sound, schema.ContentDeck.Spreads, schema.ContentDeck.UpdatedAt,
	schema.ContentDeck.Table,
)

// # Deck Retrieval

/*
List returns all decks ordered by slug.

Returns:
  - []*Deck: Every stored deck
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Deck, error) {
	query := selectDeck + " ORDER BY " + schema.ContentDeck.Slug

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_decks")
	}
	defer rows.Close()

	var decks []*Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_decks")
	}

	return decks, nil
}

// FindBySlug retrieves a single deck by its slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Deck, error) {
	query := selectDeck + " WHERE " + schema.ContentDeck.Slug + " = $1"

	d, err := scanDeck(repository.db.QueryRow(context, query, slug))
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.NotFound("Deck")
		}
		return nil, err
	}
	return d, nil
}

// # Deck Mutation

/*
Upsert writes the deck, replacing any deck with the same slug.

Parameters:
  - d: *Deck (UpdatedAt is set from the database clock)

Returns:
  - error: Encoding or persistence failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, d *Deck) error {
	spreads, err := json.Marshal(d.Spreads)
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode spreads: %w", err))
	}

	const query = `
		INSERT INTO content.deck (slug, title, cover, sound, spreads, updatedat)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (slug) DO UPDATE SET
			title     = EXCLUDED.title,
			cover     = EXCLUDED.cover,
			sound     = EXCLUDED.sound,
			spreads   = EXCLUDED.spreads,
			updatedat = now()
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query, d.Slug, d.Title, d.Cover, d.Sound, spreads).Scan(&d.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_deck")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*Deck, error) {
	d := &Deck{}
	var spreads []byte

	if err := row.Scan(&d.Slug, &d.Title, &d.Cover, &d.Sound, &spreads, &d.UpdatedAt); err != nil {
		return nil, dberr.Wrap(err, "scan_deck")
	}
	if err := json.Unmarshal(spreads, &d.Spreads); err != nil {
		return nil, apperr.Internal(fmt.Errorf("decode spreads of %s: %w", d.Slug, err))
	}
	return d, nil
}
