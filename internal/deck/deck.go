// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package deck defines the comic-book content shown by the page reader and
the catalogue that serves it.

A [Deck] is an ordered, fixed sequence of two-page [Spread] values. Once a
deck is handed to a reader it is never mutated: re-imports replace the
catalogue entry with a new *Deck, so sessions opened on the old pointer
keep reading a consistent copy.
*/
package deck

import (
	"fmt"
	"time"

	"github.com/taibuivan/revenuegear/internal/platform/validate"
	"github.com/taibuivan/revenuegear/pkg/slug"
)

// MaxPhotosPerPage is the largest number of photo frames laid out on one page.
const MaxPhotosPerPage = 4

// Photo is one framed image with a default and a hover variant.
type Photo struct {
	Default string `json:"default" yaml:"default"`
	Hover   string `json:"hover,omitempty" yaml:"hover,omitempty"`
}

// Variant returns the image to show for the given hover state.
// A photo without a hover image keeps its default.
func (p Photo) Variant(hovered bool) string {
	if hovered && p.Hover != "" {
		return p.Hover
	}
	return p.Default
}

// Page is one half of a spread: a background plus its photo frames.
type Page struct {
	Background string  `json:"background" yaml:"background"`
	Photos     []Photo `json:"photos" yaml:"photos"`
}

// Spread is the two-page view shown at one deck index.
type Spread struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Left  Page   `json:"left_page" yaml:"left_page"`
	Right Page   `json:"right_page" yaml:"right_page"`
}

// Deck is an ordered collection of spreads plus its cover and open cue.
type Deck struct {
	Slug      string    `json:"slug" yaml:"slug"`
	Title     string    `json:"title" yaml:"title"`
	Cover     string    `json:"cover" yaml:"cover"`
	Sound     string    `json:"sound,omitempty" yaml:"sound,omitempty"`
	Spreads   []Spread  `json:"spreads" yaml:"spreads"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// Len returns the number of spreads.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Spreads)
}

// Spread returns the spread at index i.
func (d *Deck) Spread(i int) (Spread, bool) {
	if i < 0 || i >= d.Len() {
		return Spread{}, false
	}
	return d.Spreads[i], true
}

// Normalize fills derived fields: the slug from the title when missing.
func (d *Deck) Normalize() {
	if d.Slug == "" {
		d.Slug = slug.From(d.Title)
	}
}

// Validate checks that the deck can be rendered by a reader.
func (d *Deck) Validate() error {
	v := &validate.Validator{}
	v.Required("title", d.Title)
	v.Slug("slug", d.Slug)
	v.Custom("spreads", len(d.Spreads) == 0, "A deck needs at least one spread")

	for i, spread := range d.Spreads {
		validatePage(v, fmt.Sprintf("spreads[%d].left_page", i), spread.Left)
		validatePage(v, fmt.Sprintf("spreads[%d].right_page", i), spread.Right)
	}

	return v.Err()
}

func validatePage(v *validate.Validator, path string, page Page) {
	v.Required(path+".background", page.Background)
	v.Range(path+".photos", len(page.Photos), 0, MaxPhotosPerPage)

	for j, photo := range page.Photos {
		v.Required(fmt.Sprintf("%s.photos[%d].default", path, j), photo.Default)
	}
}
