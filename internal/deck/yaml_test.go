// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/deck"
)

const sampleYAML = `
title: Service Lane
cover: /service.png
spreads:
  - left_page:
      background: lane.png
      photos:
        - default: a.png
    right_page:
      background: lane.png
`

func TestParse(t *testing.T) {
	d, err := deck.Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "service-lane", d.Slug)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "a.png", d.Spreads[0].Left.Photos[0].Variant(true))
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := deck.Parse(strings.NewReader(sampleYAML + "colour: red\n"))
	assert.Error(t, err)
}

func TestParse_RejectsInvalidDeck(t *testing.T) {
	_, err := deck.Parse(strings.NewReader("title: Empty\n"))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, deck.Encode(&buf, deck.Default()))

	d, err := deck.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, deck.Default().Spreads, d.Spreads)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(sampleYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte(strings.Replace(sampleYAML, "Service Lane", "Front Desk", 1)), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700))

	decks, err := deck.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, "front-desk", decks[0].Slug)
	assert.Equal(t, "service-lane", decks[1].Slug)
}

func TestLoadDir_NamesBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("title: [unclosed"), 0o600))

	_, err := deck.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestIsDeckFile(t *testing.T) {
	assert.True(t, deck.IsDeckFile("x.yaml"))
	assert.True(t, deck.IsDeckFile("X.YML"))
	assert.False(t, deck.IsDeckFile("x.json"))
}
