// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"fmt"

	"github.com/taibuivan/revenuegear/internal/deck"
)

// Overlay is the transitional visual drawn on top of the spread.
type Overlay string

const (
	OverlayNone     Overlay = ""
	OverlayOpening  Overlay = "opening"
	OverlayFlipNext Overlay = "flip_next"
	OverlayFlipPrev Overlay = "flip_prev"
	OverlayClosing  Overlay = "closing"
)

// View is what a front end draws for one state. It holds no state of its own.
type View struct {
	// ShowCover is true only while closed; Cover is always set so the
	// opening overlay can animate it away.
	ShowCover bool   `json:"show_cover"`
	Cover     string `json:"cover"`

	Spread *deck.Spread `json:"spread,omitempty"`

	Overlay Overlay `json:"overlay,omitempty"`
	// OverlayPage is the page being turned away during a flip.
	OverlayPage *deck.Page `json:"overlay_page,omitempty"`
	// Settling is true once the underlying spread already shows the new index.
	Settling bool `json:"settling,omitempty"`

	Index    int     `json:"index"`
	Total    int     `json:"total"`
	Progress float64 `json:"progress"`
	Label    string  `json:"label"`
}

/*
Render derives the view for state s over d.

During the leave half of a flip the spread is still the outgoing one and
the overlay is its turning page. After the midpoint the spread is the
incoming one while the overlay keeps the page that was turned away.
*/
func Render(s State, d *deck.Deck) View {
	v := View{Cover: d.Cover, Total: d.Len()}

	if !s.IsOpen() {
		v.ShowCover = true
		return v
	}

	spread, ok := d.Spread(s.Index)
	if !ok {
		v.ShowCover = true
		return v
	}

	v.Spread = &spread
	v.Index = s.Index
	v.Progress = float64(s.Index+1) / float64(d.Len())
	v.Label = fmt.Sprintf("Page %d of %d", s.Index+1, d.Len())

	switch s.Phase {
	case PhaseOpening:
		v.Overlay = OverlayOpening

	case PhaseFlippingNext:
		if s.Step == StepClosing {
			v.Overlay = OverlayClosing
			v.OverlayPage = &spread.Right
			break
		}
		v.Overlay = OverlayFlipNext
		v.Settling = s.Step == StepSettle
		v.OverlayPage = &spread.Right
		if v.Settling {
			if prior, ok := d.Spread(s.Index - 1); ok {
				v.OverlayPage = &prior.Right
			}
		}

	case PhaseFlippingPrev:
		v.Overlay = OverlayFlipPrev
		v.Settling = s.Step == StepSettle
		v.OverlayPage = &spread.Left
		if v.Settling {
			if following, ok := d.Spread(s.Index + 1); ok {
				v.OverlayPage = &following.Left
			}
		}
	}

	return v
}
