// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/apperr"
)

/*
TestDefault verifies the built-in deck matches the shipped explainer.
*/
func TestDefault(t *testing.T) {
	d := deck.Default()

	assert.Equal(t, deck.DefaultSlug, d.Slug)
	assert.Equal(t, "/Title.png", d.Cover)
	assert.Equal(t, "/book.mp4", d.Sound)
	require.Equal(t, 3, d.Len())

	for _, spread := range d.Spreads {
		assert.Equal(t, "COVER2.png", spread.Left.Background)
		assert.Equal(t, "COVER2.png", spread.Right.Background)
	}

	// Every call returns an independent copy.
	d.Spreads[0].Title = "changed"
	assert.Equal(t, "Page 1", deck.Default().Spreads[0].Title)
}

func TestPhoto_Variant(t *testing.T) {
	withHover := deck.Photo{Default: "1.png", Hover: "1-hover.png"}
	assert.Equal(t, "1.png", withHover.Variant(false))
	assert.Equal(t, "1-hover.png", withHover.Variant(true))

	plain := deck.Photo{Default: "2.png"}
	assert.Equal(t, "2.png", plain.Variant(true))
}

func TestDeck_Spread(t *testing.T) {
	d := deck.Default()

	_, ok := d.Spread(-1)
	assert.False(t, ok)
	_, ok = d.Spread(3)
	assert.False(t, ok)

	spread, ok := d.Spread(2)
	assert.True(t, ok)
	assert.Equal(t, "Page 3", spread.Title)

	var nilDeck *deck.Deck
	assert.Zero(t, nilDeck.Len())
}

func TestDeck_Validate(t *testing.T) {
	page := deck.Page{Background: "bg.png", Photos: []deck.Photo{{Default: "a.png"}}}

	tests := []struct {
		name      string
		deck      deck.Deck
		wantField string
	}{
		{
			name: "valid",
			deck: deck.Deck{Slug: "ok", Title: "Ok", Spreads: []deck.Spread{{Left: page, Right: page}}},
		},
		{
			name:      "no_spreads",
			deck:      deck.Deck{Slug: "empty", Title: "Empty"},
			wantField: "spreads",
		},
		{
			name:      "missing_background",
			deck:      deck.Deck{Slug: "bg", Title: "Bg", Spreads: []deck.Spread{{Left: deck.Page{}, Right: page}}},
			wantField: "spreads[0].left_page.background",
		},
		{
			name: "too_many_photos",
			deck: deck.Deck{Slug: "crowded", Title: "Crowded", Spreads: []deck.Spread{{
				Left:  page,
				Right: deck.Page{Background: "bg.png", Photos: make([]deck.Photo, 5)},
			}}},
			wantField: "spreads[0].right_page.photos",
		},
		{
			name:      "bad_slug",
			deck:      deck.Deck{Slug: "Not A Slug", Title: "Bad", Spreads: []deck.Spread{{Left: page, Right: page}}},
			wantField: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deck.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			fields := make([]string, 0, len(appError.Details))
			for _, detail := range appError.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestDeck_NormalizeDerivesSlug(t *testing.T) {
	d := deck.Deck{Title: "Is This You?"}
	d.Normalize()
	assert.Equal(t, "is-this-you", d.Slug)
}
