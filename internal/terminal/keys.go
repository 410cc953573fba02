// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terminal

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the reader's bindings; it also feeds the help line.
type keyMap struct {
	Open  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Close key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open"),
		),
		Next: key.NewBinding(
			key.WithKeys(" ", "right", "l"),
			key.WithHelp("space/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		Close: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Next, k.Prev, k.Close, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
