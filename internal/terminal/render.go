// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package terminal

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/reader"
)

const (
	pageWidth     = 30
	progressWidth = 40

	// pageColumns is a rendered page including its border.
	pageColumns = pageWidth + 2
)

// side is the page under the mouse pointer.
type side int

const (
	sideNone side = iota
	sideLeft
	sideRight
)

func sideAt(column int) side {
	switch {
	case column < 0:
		return sideNone
	case column < pageColumns:
		return sideLeft
	case column < 2*pageColumns:
		return sideRight
	default:
		return sideNone
	}
}

var styles = struct {
	Title   lipgloss.Style
	Cover   lipgloss.Style
	Page    lipgloss.Style
	Turning lipgloss.Style
	Overlay lipgloss.Style
	Chime   lipgloss.Style
	Muted   lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F5A524")).
		MarginBottom(1),
	Cover: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("#F5A524")).
		Padding(2, 4).
		Width(pageWidth*2 + 2).
		Align(lipgloss.Center),
	Page: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7B61FF")).
		Padding(0, 1).
		Width(pageWidth).
		Height(8),
	Turning: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#666666")).
		Foreground(lipgloss.Color("#666666")).
		Padding(0, 1).
		Width(pageWidth).
		Height(8),
	Overlay: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#5A9")),
	Chime: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.reader.Deck()
	var b strings.Builder

	title := d.Title
	if m.chimed && d.Sound != "" {
		title += "  " + styles.Chime.Render("♪ "+path.Base(d.Sound))
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if m.view.ShowCover {
		b.WriteString(styles.Cover.Render("cover\n" + path.Base(m.view.Cover) + "\n\npress o to open"))
	} else {
		b.WriteString(renderSpread(m.view, m.hover))
		b.WriteString("\n")
		if line := overlayLine(m.view); line != "" {
			b.WriteString(styles.Overlay.Render(line))
			b.WriteString("\n")
		}
		b.WriteString(m.bar.ViewAs(m.view.Progress))
		b.WriteString(" ")
		b.WriteString(m.view.Label)
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render(m.snapshot.Name()))
	b.WriteString("  ")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderSpread draws both pages, greying out the page currently being turned.
func renderSpread(v reader.View, hover side) string {
	left := styles.Page
	right := styles.Page

	if v.Overlay != reader.OverlayOpening && v.OverlayPage != nil && !v.Settling {
		switch v.Overlay {
		case reader.OverlayFlipNext, reader.OverlayClosing:
			right = styles.Turning
		case reader.OverlayFlipPrev:
			left = styles.Turning
		}
	}

	title := v.Spread.Title
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(pageText(title, v.Spread.Left, hover == sideLeft)),
		right.Render(pageText("", v.Spread.Right, hover == sideRight)),
	)
}

func pageText(title string, page deck.Page, hovered bool) string {
	var lines []string
	if title != "" {
		lines = append(lines, title)
	}
	lines = append(lines, "bg "+path.Base(page.Background))
	for _, photo := range page.Photos {
		lines = append(lines, "▣ "+path.Base(photo.Variant(hovered)))
	}
	return strings.Join(lines, "\n")
}

func overlayLine(v reader.View) string {
	switch v.Overlay {
	case reader.OverlayOpening:
		return "opening…"
	case reader.OverlayClosing:
		return "closing…"
	case reader.OverlayFlipNext, reader.OverlayFlipPrev:
		if v.OverlayPage == nil {
			return ""
		}
		direction := "→"
		if v.Overlay == reader.OverlayFlipPrev {
			direction = "←"
		}
		return fmt.Sprintf("%s turning %s", direction, path.Base(v.OverlayPage.Background))
	}
	return ""
}
