// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/validate"
)

// # Service Layer

/*
Service is the deck catalogue.

It keeps every known deck in memory, keyed by slug, and writes through to
the [Repository] when one is configured. The built-in [Default] deck is
always present. Readers hold *Deck pointers; replacing a deck swaps the
map entry and never mutates the old value.
*/
type Service struct {
	repo        Repository
	logger      *slog.Logger
	defaultSlug string

	mu    sync.RWMutex
	decks map[string]*Deck
}

// NewService constructs a catalogue seeded with the built-in deck.
// repo may be nil for a purely in-memory catalogue (deckctl read).
func NewService(repo Repository, logger *slog.Logger, defaultSlug string) *Service {
	if defaultSlug == "" {
		defaultSlug = DefaultSlug
	}

	builtin := Default()
	return &Service{
		repo:        repo,
		logger:      logger,
		defaultSlug: defaultSlug,
		decks:       map[string]*Deck{builtin.Slug: builtin},
	}
}

// Load fills the cache from the repository.
func (service *Service) Load(ctx context.Context) error {
	if service.repo == nil {
		return nil
	}

	decks, err := service.repo.List(ctx)
	if err != nil {
		return err
	}

	service.mu.Lock()
	for _, d := range decks {
		service.decks[d.Slug] = d
	}
	service.mu.Unlock()

	service.logger.Info("decks_loaded", slog.Int("count", len(decks)))
	return nil
}

// DefaultSlug returns the slug used when a caller names no deck.
func (service *Service) DefaultSlug() string {
	return service.defaultSlug
}

/*
Get returns the deck with the given slug, or the default deck for "".

A cache miss falls back to the repository so decks written by another
process (deckctl import) become visible without a restart.

Returns:
  - *Deck: The shared, read-only deck
  - error: NOT_FOUND if no deck has that slug
*/
func (service *Service) Get(ctx context.Context, slug string) (*Deck, error) {
	if slug == "" {
		slug = service.defaultSlug
	}

	service.mu.RLock()
	d, ok := service.decks[slug]
	service.mu.RUnlock()
	if ok {
		return d, nil
	}

	if service.repo == nil {
		return nil, apperr.NotFound("Deck")
	}

	d, err := service.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	service.mu.Lock()
	service.decks[d.Slug] = d
	service.mu.Unlock()

	return d, nil
}

// List returns every deck in the catalogue ordered by slug.
func (service *Service) List() []*Deck {
	service.mu.RLock()
	decks := make([]*Deck, 0, len(service.decks))
	for _, d := range service.decks {
		decks = append(decks, d)
	}
	service.mu.RUnlock()

	sort.Slice(decks, func(i, j int) bool { return decks[i].Slug < decks[j].Slug })
	return decks
}

/*
Import validates all decks, then persists and publishes them.

Nothing is written unless every deck is valid. A persistence failure
stops the import; decks written before it stay published.
*/
func (service *Service) Import(ctx context.Context, decks []*Deck) error {
	for _, d := range decks {
		d.Normalize()
		if err := d.Validate(); err != nil {
			return err
		}
	}

	for _, d := range decks {
		if err := service.persist(ctx, d); err != nil {
			return err
		}
	}

	service.logger.Info("decks_imported", slog.Int("count", len(decks)))
	return nil
}

// ImportDir loads every YAML deck in dir and imports them.
func (service *Service) ImportDir(ctx context.Context, dir string) (int, error) {
	decks, err := LoadDir(dir)
	if err != nil {
		var details []apperr.FieldError
		if appError := apperr.As(err); appError != nil {
			details = appError.Details
		}
		return 0, apperr.ValidationError(err.Error(), details...).WithCause(err)
	}
	if err := service.Import(ctx, decks); err != nil {
		return 0, err
	}
	return len(decks), nil
}

// Upsert replaces the deck stored under slug. The body's slug, if set, must match.
func (service *Service) Upsert(ctx context.Context, slug string, d *Deck) error {
	validator := &validate.Validator{}
	validator.Slug("slug", slug)
	validator.Custom("slug", d.Slug != "" && d.Slug != slug, "Slug does not match the URL")
	if err := validator.Err(); err != nil {
		return err
	}

	d.Slug = slug
	if err := d.Validate(); err != nil {
		return err
	}

	if err := service.persist(ctx, d); err != nil {
		return err
	}

	service.logger.Info("deck_upserted", slog.String("slug", slug), slog.Int("spreads", d.Len()))
	return nil
}

func (service *Service) persist(ctx context.Context, d *Deck) error {
	if service.repo != nil {
		if err := service.repo.Upsert(ctx, d); err != nil {
			return err
		}
	}

	service.mu.Lock()
	service.decks[d.Slug] = d
	service.mu.Unlock()
	return nil
}
