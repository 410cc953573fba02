// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session hosts reader instances for remote clients.

Each [Session] owns one [reader.Reader] over a deck from the catalogue.
Sessions live in memory; every state change is snapshotted to a
[Repository] so a session evicted from this process (restart, another
replica) can be rebuilt on its next request.

# Rehydration

A stored snapshot that was closed comes back closed. Any open snapshot
comes back open and idle at its index: an in-flight flip or open
animation is not resumed, because its timer belonged to the process
that lost it.
*/
package session

import (
	"sync"
	"time"

	"github.com/taibuivan/revenuegear/internal/reader"
)

// Session is one reader served over HTTP.
type Session struct {
	ID        string
	DeckSlug  string
	Reader    *reader.Reader
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	stop     func()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns the time of the last request that addressed the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Record is the persisted snapshot of a session.
type Record struct {
	ID        string       `json:"id"`
	DeckSlug  string       `json:"deck"`
	State     reader.State `json:"state"`
	Version   uint64       `json:"version"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Command is a navigation command addressed to a session.
type Command string

const (
	CommandOpen  Command = "open"
	CommandNext  Command = "next"
	CommandPrev  Command = "prev"
	CommandClose Command = "close"
)

// Result is the response to every session request.
type Result struct {
	ID       string          `json:"id"`
	Deck     string          `json:"deck"`
	Accepted bool            `json:"accepted"`
	Swipe    string          `json:"swipe,omitempty"`
	Cue      string          `json:"cue,omitempty"`
	State    reader.Snapshot `json:"state"`
	View     reader.View     `json:"view"`
}
