// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"bytes"
	_ "embed"
)

// DefaultSlug identifies the built-in explainer deck.
const DefaultSlug = "is-this-you"

//go:embed default.yaml
var defaultDeckYAML []byte

// Default returns a fresh copy of the built-in "Is This You?" deck.
// It panics if the embedded file is invalid, which the package tests rule out.
func Default() *Deck {
	d, err := Parse(bytes.NewReader(defaultDeckYAML))
	if err != nil {
		panic("deck: embedded default deck is invalid: " + err.Error())
	}
	return d
}
