// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single YAML deck document, normalizes and validates it.
// Unknown keys are rejected so typos in deck files fail loudly.
func Parse(r io.Reader) (*Deck, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	d := &Deck{}
	if err := decoder.Decode(d); err != nil {
		return nil, fmt.Errorf("deck: decode yaml: %w", err)
	}

	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// LoadFile parses the deck stored at path.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deck: read %s: %w", path, err)
	}

	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return d, nil
}

// LoadDir parses every *.yaml / *.yml file in dir, sorted by file name.
// The first invalid file aborts the load.
func LoadDir(dir string) ([]*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("deck: read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && IsDeckFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	decks := make([]*Deck, 0, len(names))
	for _, name := range names {
		d, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}

	return decks, nil
}

// IsDeckFile reports whether name has a YAML extension.
func IsDeckFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Encode writes d as YAML.
func Encode(w io.Writer, d *Deck) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("deck: encode yaml: %w", err)
	}
	return encoder.Close()
}
