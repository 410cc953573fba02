// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package terminal runs a [reader.Reader] as a bubbletea program.

Key presses call the reader directly from Update. Timer-driven transitions
happen on clock goroutines, so the reader's change listener only raises a
coalescing signal that a waiting command turns into a message. Update
never blocks on the program's message loop.

# Keys

	o, enter          open
	space, →, l       next
	←, h              previous
	c, esc            close
	q, ctrl+c         quit

Dragging with the left mouse button is classified like a touch swipe.
Pointing at a page shows its photos' hover variants.
*/
package terminal

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/reader"
)

// Terminal cells are scaled to approximate pixels before gesture classification.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type changedMsg struct{}

type cueMsg struct{}

// Model is the bubbletea model for one reader.
type Model struct {
	reader  *reader.Reader
	keys    keyMap
	help    help.Model
	bar     progress.Model
	changes chan struct{}
	cues    chan struct{}
	cancel  func()

	view     reader.View
	snapshot reader.Snapshot
	chimed   bool

	dragging  bool
	dragStart reader.Point
	hover     side

	quitting bool
}

// New builds a model over d. Options are passed to [reader.New]; the open
// cue is always replaced by an on-screen chime.
func New(d *deck.Deck, opts ...reader.Option) (*Model, error) {
	m := &Model{
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithGradient("#7B61FF", "#F5A524"), progress.WithWidth(progressWidth)),
		changes: make(chan struct{}, 1),
		cues:    make(chan struct{}, 1),
	}

	opts = append(opts, reader.WithCue(reader.CueFunc(func(context.Context) error {
		signal(m.cues)
		return nil
	})))

	r, err := reader.New(d, opts...)
	if err != nil {
		return nil, err
	}

	m.reader = r
	m.cancel = r.OnChange(func(reader.Snapshot) { signal(m.changes) })
	m.refresh()

	return m, nil
}

// Reader exposes the underlying reader.
func (m *Model) Reader() *reader.Reader { return m.reader }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(wait(m.changes, changedMsg{}), wait(m.cues, cueMsg{}))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.refresh()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case changedMsg:
		m.refresh()
		return m, wait(m.changes, changedMsg{})

	case cueMsg:
		m.chimed = true
		return m, wait(m.cues, cueMsg{})
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		m.reader.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		m.reader.Open()
	case key.Matches(msg, m.keys.Next):
		m.reader.Next()
	case key.Matches(msg, m.keys.Prev):
		m.reader.Prev()
	case key.Matches(msg, m.keys.Close):
		m.reader.Close()
	}

	m.refresh()
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	point := reader.Point{X: float64(msg.X) * cellWidth, Y: float64(msg.Y) * cellHeight}
	m.hover = sideAt(msg.X)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragStart = point
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without a button.
		if m.dragging {
			m.dragging = false
			m.reader.HandleGesture(m.dragStart, point)
		}
	}
}

func (m *Model) refresh() {
	m.snapshot = m.reader.Snapshot()
	m.view = m.reader.View()
	if !m.snapshot.IsOpen() {
		m.chimed = false
	}

	// Navigation is absorbed mid-transition; hide it from the help line.
	busy := m.snapshot.Busy()
	m.keys.Next.SetEnabled(!busy)
	m.keys.Prev.SetEnabled(!busy)
}

// signal performs a non-blocking send; one pending signal is enough because
// the receiver always re-reads the latest state.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func wait(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

// Run starts an alternate-screen program for d and blocks until the user quits.
func Run(d *deck.Deck, opts ...reader.Option) error {
	m, err := New(d, opts...)
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	return err
}
