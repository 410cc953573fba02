// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import "time"

// EventKind names an input to the state machine.
type EventKind uint8

const (
	EventOpen EventKind = iota
	EventNext
	EventPrev
	EventClose
	// EventTimer is the expiry of the transition timer scheduled by the previous step.
	EventTimer
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventNext:
		return "next"
	case EventPrev:
		return "prev"
	case EventClose:
		return "close"
	case EventTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Event is a single input stamped with the time it was observed.
type Event struct {
	Kind EventKind
	At   time.Time
}

// Effect lists what the runtime must do after a transition.
type Effect struct {
	// Changed is false when the event was absorbed as a no-op.
	Changed bool
	// Cancel stops the pending transition timer, if any.
	Cancel bool
	// Arm requests a new transition timer after Schedule. A zero Schedule
	// fires on the next clock tick.
	Arm      bool
	Schedule time.Duration
	// PlayCue requests the open sound.
	PlayCue bool
}

/*
Transition computes the next state for event ev.

It is pure: timers and sounds are described by the returned [Effect] and
carried out by the caller. Navigation that arrives in the wrong phase,
inside the debounce window or at a deck boundary returns the state
unchanged with a zero Effect.

# Flips

A flip is two timer steps. The index only moves at the end of the leave
half, so anything rendered during that half still shows the outgoing
spread. Advancing past the last spread schedules a close instead of a
flip and returns the reader to [Initial] when the timer fires.
*/
func Transition(s State, ev Event, deckLen int, t Timing) (State, Effect) {
	switch ev.Kind {
	case EventOpen:
		if s.Phase != PhaseClosed || deckLen <= 0 {
			return s, Effect{}
		}
		return State{Phase: PhaseOpening}, Effect{Changed: true, Cancel: true, Arm: true, Schedule: t.Open, PlayCue: true}

	case EventNext:
		if s.Phase != PhaseIdle || !debounced(s, ev.At, t) {
			return s, Effect{}
		}
		next := s
		next.Phase = PhaseFlippingNext
		next.LastNavigation = ev.At
		if s.Index >= deckLen-1 {
			next.Step = StepClosing
			return next, Effect{Changed: true, Arm: true, Schedule: t.Close}
		}
		next.Step = StepLeave
		return next, Effect{Changed: true, Arm: true, Schedule: t.leaveHalf()}

	case EventPrev:
		if s.Phase != PhaseIdle || s.Index <= 0 || !debounced(s, ev.At, t) {
			return s, Effect{}
		}
		next := s
		next.Phase = PhaseFlippingPrev
		next.Step = StepLeave
		next.LastNavigation = ev.At
		return next, Effect{Changed: true, Arm: true, Schedule: t.leaveHalf()}

	case EventClose:
		if s.Phase == PhaseClosed {
			return s, Effect{}
		}
		return Initial(), Effect{Changed: true, Cancel: true}

	case EventTimer:
		return expire(s, deckLen, t)
	}

	return s, Effect{}
}

func expire(s State, deckLen int, t Timing) (State, Effect) {
	next := s
	switch {
	case s.Phase == PhaseOpening:
		next.Phase = PhaseIdle
		return next, Effect{Changed: true}

	case s.Step == StepClosing:
		return Initial(), Effect{Changed: true}

	case s.Step == StepLeave && s.Phase == PhaseFlippingNext:
		next.Index = min(s.Index+1, deckLen-1)
		next.Step = StepSettle
		return next, Effect{Changed: true, Arm: true, Schedule: t.settleHalf()}

	case s.Step == StepLeave && s.Phase == PhaseFlippingPrev:
		next.Index = max(s.Index-1, 0)
		next.Step = StepSettle
		return next, Effect{Changed: true, Arm: true, Schedule: t.settleHalf()}

	case s.Step == StepSettle:
		next.Phase = PhaseIdle
		next.Step = StepNone
		return next, Effect{Changed: true}
	}

	// Nothing was pending.
	return s, Effect{}
}

// debounced reports whether enough time has passed since the last accepted
// navigation. A reader that has never navigated is always debounced.
func debounced(s State, now time.Time, t Timing) bool {
	if s.LastNavigation.IsZero() {
		return true
	}
	return now.Sub(s.LastNavigation) >= t.Debounce
}
