// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"fmt"
	"time"
)

// Phase is the coarse state of a reader.
type Phase uint8

const (
	PhaseClosed Phase = iota
	PhaseIdle
	PhaseOpening
	PhaseFlippingNext
	PhaseFlippingPrev
)

var phaseNames = [...]string{
	PhaseClosed:       "closed",
	PhaseIdle:         "idle",
	PhaseOpening:      "opening",
	PhaseFlippingNext: "flipping_next",
	PhaseFlippingPrev: "flipping_prev",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// MarshalText implements [encoding.TextMarshaler].
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("reader: unknown phase %q", text)
}

// Step refines a flipping phase.
type Step uint8

const (
	// StepNone is used by every phase that is not a flip.
	StepNone Step = iota
	// StepLeave is the first flip half; the index still names the outgoing spread.
	StepLeave
	// StepSettle is the second flip half; the index names the incoming spread.
	StepSettle
	// StepClosing is the advance past the last spread, waiting to close.
	StepClosing
)

var stepNames = [...]string{
	StepNone:    "",
	StepLeave:   "leave",
	StepSettle:  "settle",
	StepClosing: "closing",
}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", uint8(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Step) UnmarshalText(text []byte) error {
	for i, name := range stepNames {
		if name == string(text) {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("reader: unknown step %q", text)
}

// State is the complete mutable state of one reader.
//
// The zero value is the initial state: closed, at index 0, never navigated.
type State struct {
	Phase          Phase     `json:"phase"`
	Step           Step      `json:"step,omitempty"`
	Index          int       `json:"index"`
	LastNavigation time.Time `json:"last_navigation,omitempty"`
}

// Initial returns the state a reader starts in and returns to on close.
func Initial() State {
	return State{}
}

// IsOpen reports whether the reader shows spreads rather than the cover.
func (s State) IsOpen() bool {
	return s.Phase != PhaseClosed
}

// Busy reports whether a timed transition is in flight.
func (s State) Busy() bool {
	switch s.Phase {
	case PhaseOpening, PhaseFlippingNext, PhaseFlippingPrev:
		return true
	default:
		return false
	}
}

// Name returns the dotted state name, e.g. "open.flipping_next.settle".
func (s State) Name() string {
	if s.Phase == PhaseClosed {
		return "closed"
	}
	name := "open." + s.Phase.String()
	if s.Step != StepNone {
		name += "." + s.Step.String()
	}
	return name
}
