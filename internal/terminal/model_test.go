// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terminal

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/reader"
	"github.com/taibuivan/revenuegear/internal/reader/readertest"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func newModel(t *testing.T) (*Model, *readertest.Clock) {
	t.Helper()
	clock := readertest.NewClock(epoch)
	m, err := New(deck.Default(), reader.WithClock(clock))
	require.NoError(t, err)
	return m, clock
}

func press(m *Model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

/*
TestModel_OpenAndTurn verifies the key path through a full open and one page turn.

1. The closed model shows the cover.
2. 'o' starts opening; the timer signal refreshes the model to idle.
3. Right arrow flips to the second spread once the flip completes.
*/
func TestModel_OpenAndTurn(t *testing.T) {
	m, clock := newModel(t)
	assert.Contains(t, m.View(), "press o to open")

	press(m, runes("o"))
	assert.Equal(t, reader.PhaseOpening, m.snapshot.Phase)
	assert.Contains(t, m.View(), "opening")

	clock.Advance(time.Second)
	require.Len(t, m.changes, 1)
	<-m.changes
	_, cmd := m.Update(changedMsg{})
	assert.NotNil(t, cmd)

	assert.Equal(t, reader.PhaseIdle, m.snapshot.Phase)
	assert.Contains(t, m.View(), "Page 1 of 3")

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, reader.PhaseFlippingNext, m.snapshot.Phase)

	clock.Advance(600 * time.Millisecond)
	m.Update(changedMsg{})
	assert.Equal(t, 1, m.snapshot.Index)
	assert.Contains(t, m.View(), "Page 2 of 3")
}

func TestModel_CueShowsChimeUntilClosed(t *testing.T) {
	m, clock := newModel(t)

	press(m, runes("o"))
	require.Eventually(t, func() bool { return len(m.cues) == 1 }, time.Second, 5*time.Millisecond)
	<-m.cues
	m.Update(cueMsg{})
	assert.Contains(t, m.View(), "♪ book.mp4")

	clock.Advance(time.Second)
	press(m, runes("c"))
	assert.False(t, m.snapshot.IsOpen())
	assert.NotContains(t, m.View(), "♪")
}

func TestModel_MouseDragSwipes(t *testing.T) {
	m, clock := newModel(t)
	press(m, runes("o"))
	clock.Advance(time.Second)
	m.Update(changedMsg{})

	m.Update(tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionRelease})
	assert.Equal(t, reader.PhaseFlippingNext, m.snapshot.Phase)

	clock.Advance(600 * time.Millisecond)
	m.Update(changedMsg{})
	require.Equal(t, 1, m.snapshot.Index)

	// A short drag is ignored.
	m.Update(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 33, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, reader.PhaseIdle, m.snapshot.Phase)
}

func TestModel_QuitClosesReader(t *testing.T) {
	m, clock := newModel(t)
	press(m, runes("o"))
	clock.Advance(time.Second)

	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.reader.Snapshot().IsOpen())
	assert.Empty(t, m.View())
}

func TestModel_HelpListsBindings(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()

	for _, want := range []string{"open", "next", "prev", "close", "quit"} {
		assert.Contains(t, view, want)
	}
}

/*
TestModel_BusyHidesNavigationHelp verifies that next and prev drop out of the
help line while a transition is running.

1. Mid-flip both bindings are disabled and missing from help.
2. Once the flip settles they are back.
*/
func TestModel_BusyHidesNavigationHelp(t *testing.T) {
	m, clock := newModel(t)
	press(m, runes("o"))
	clock.Advance(time.Second)
	m.Update(changedMsg{})

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, m.snapshot.Busy())
	assert.False(t, m.keys.Next.Enabled())
	assert.False(t, m.keys.Prev.Enabled())
	assert.NotContains(t, m.help.View(m.keys), "next")
	assert.Contains(t, m.help.View(m.keys), "close")

	clock.Advance(600 * time.Millisecond)
	m.Update(changedMsg{})
	assert.True(t, m.keys.Next.Enabled())
	assert.Contains(t, m.help.View(m.keys), "next")
}

func TestModel_HoverShowsPhotoVariant(t *testing.T) {
	m, clock := newModel(t)
	press(m, runes("o"))
	clock.Advance(time.Second)
	m.Update(changedMsg{})

	view := m.View()
	assert.Contains(t, view, "1.png")
	assert.NotContains(t, view, "hover")

	m.Update(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion})
	view = m.View()
	assert.Contains(t, view, "1-hover.png")
	assert.Contains(t, view, "3.png")
	assert.NotContains(t, view, "3-hover.png")

	m.Update(tea.MouseMsg{X: pageColumns + 5, Y: 4, Action: tea.MouseActionMotion})
	view = m.View()
	assert.Contains(t, view, "3-hover.png")
	assert.NotContains(t, view, "1-hover.png")
}
