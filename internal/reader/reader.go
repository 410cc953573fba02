// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reader implements the paginated comic reader: a guarded state
machine whose transitions are driven by navigation commands and timers.

[Transition] is the pure core. [Reader] owns one state, one pending timer
and the collaborators (clock, open cue, logger) for a single deck.

# Concurrency

All methods on [Reader] are safe for concurrent use. Every timer callback
carries the generation it was armed in; a callback whose generation is no
longer current is dropped, so a timer that fires after Close, or that
races with it, can never mutate state. Change listeners are called after
the lock is released and may call back into the reader.
*/
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/revenuegear/internal/deck"
)

// ErrEmptyDeck is returned by [New] for a deck with no spreads.
var ErrEmptyDeck = errors.New("reader: deck has no spreads")

// DefaultCueTimeout bounds a single play of the open cue.
const DefaultCueTimeout = 5 * time.Second

// Cue plays the sound that accompanies opening the reader.
type Cue interface {
	Play(ctx context.Context) error
}

// CueFunc adapts a function to [Cue].
type CueFunc func(ctx context.Context) error

func (f CueFunc) Play(ctx context.Context) error { return f(ctx) }

// Snapshot is a versioned copy of a reader's state.
type Snapshot struct {
	State
	Version uint64 `json:"version"`
}

// Option configures a [Reader].
type Option func(*Reader)

// WithClock replaces the wall clock, typically with a manual clock in tests.
func WithClock(clock Clock) Option {
	return func(r *Reader) { r.clock = clock }
}

// WithTiming overrides [DefaultTiming].
func WithTiming(timing Timing) Option {
	return func(r *Reader) { r.timing = timing }
}

// WithCue sets the open cue. Without one, opening is silent.
func WithCue(cue Cue) Option {
	return func(r *Reader) { r.cue = cue }
}

// WithLogger sets the logger used for transitions and cue failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// WithInitialVersion starts the version counter at v, used when a reader
// is rebuilt from a stored snapshot.
func WithInitialVersion(v uint64) Option {
	return func(r *Reader) { r.version = v }
}

// Reader is one running instance of the state machine.
type Reader struct {
	deck   *deck.Deck
	clock  Clock
	timing Timing
	cue    Cue
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	timer      Timer
	generation uint64
	version    uint64
	listeners  map[int]func(Snapshot)
	nextID     int
}

// New creates a closed reader over d.
func New(d *deck.Deck, opts ...Option) (*Reader, error) {
	if d.Len() == 0 {
		return nil, ErrEmptyDeck
	}

	r := &Reader{
		deck:      d,
		clock:     SystemClock{},
		timing:    DefaultTiming(),
		logger:    slog.New(slog.DiscardHandler),
		state:     Initial(),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.timing.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Deck returns the deck the reader was built over.
func (r *Reader) Deck() *deck.Deck { return r.deck }

// Timing returns the reader's timings.
func (r *Reader) Timing() Timing { return r.timing }

// Open starts the opening animation. It is a no-op unless the reader is closed.
func (r *Reader) Open() bool { return r.dispatch(EventOpen) }

// Next turns to the following spread, or closes after the last one.
// It is a no-op outside the idle phase or within the debounce window.
func (r *Reader) Next() bool { return r.dispatch(EventNext) }

// Prev turns to the previous spread. It is a no-op at the first spread.
func (r *Reader) Prev() bool { return r.dispatch(EventPrev) }

// Close returns to the cover immediately and cancels any pending timer.
func (r *Reader) Close() bool { return r.dispatch(EventClose) }

// HandleGesture routes a swipe from start to end through [Reader.Next] or
// [Reader.Prev]. It returns the classified swipe and whether it was accepted.
func (r *Reader) HandleGesture(start, end Point) (Swipe, bool) {
	switch swipe := Classify(start, end); swipe {
	case SwipeNext:
		return swipe, r.Next()
	case SwipePrev:
		return swipe, r.Prev()
	default:
		return swipe, false
	}
}

// Resume puts the reader open and idle at index, clamped to the deck.
// Pending timers are cancelled. It is used to rehydrate a stored session.
func (r *Reader) Resume(index int) {
	r.mu.Lock()
	r.stopTimer()
	r.state = State{Phase: PhaseIdle, Index: max(0, min(index, r.deck.Len()-1))}
	snap, listeners := r.commit()
	r.mu.Unlock()

	r.notify(snap, listeners)
}

// Snapshot returns the current state and version.
func (r *Reader) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{State: r.state, Version: r.version}
}

// View renders the current state.
func (r *Reader) View() View {
	return Render(r.Snapshot().State, r.deck)
}

// OnChange registers fn to be called after every state change.
// The returned function removes the listener.
func (r *Reader) OnChange(fn func(Snapshot)) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Reader) dispatch(kind EventKind) bool {
	r.mu.Lock()
	event := Event{Kind: kind, At: r.clock.Now()}
	changed, playCue, snap, listeners := r.apply(event)
	r.mu.Unlock()

	if changed {
		r.notify(snap, listeners)
	}
	if playCue {
		r.playCue()
	}
	return changed
}

// fire handles the expiry of the timer armed in generation gen.
func (r *Reader) fire(gen uint64) {
	r.mu.Lock()
	if gen != r.generation {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	changed, _, snap, listeners := r.apply(Event{Kind: EventTimer, At: r.clock.Now()})
	r.mu.Unlock()

	if changed {
		r.notify(snap, listeners)
	}
}

// apply runs one transition. The caller holds r.mu.
func (r *Reader) apply(event Event) (bool, bool, Snapshot, []func(Snapshot)) {
	before := r.state
	next, effect := Transition(r.state, event, r.deck.Len(), r.timing)
	if !effect.Changed {
		return false, false, Snapshot{}, nil
	}

	if effect.Cancel || effect.Arm {
		r.stopTimer()
	}
	r.state = next
	if effect.Arm {
		gen := r.generation
		r.timer = r.clock.AfterFunc(effect.Schedule, func() { r.fire(gen) })
	}

	r.logger.Debug("reader_transition",
		slog.String("event", event.Kind.String()),
		slog.String("from", before.Name()),
		slog.String("to", next.Name()),
		slog.Int("index", next.Index),
	)

	snap, listeners := r.commit()
	return true, effect.PlayCue, snap, listeners
}

// stopTimer cancels the pending timer and invalidates its generation.
func (r *Reader) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.generation++
}

// commit bumps the version and copies what listeners need. The caller holds r.mu.
func (r *Reader) commit() (Snapshot, []func(Snapshot)) {
	r.version++
	listeners := make([]func(Snapshot), 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	return Snapshot{State: r.state, Version: r.version}, listeners
}

func (r *Reader) notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}

// playCue plays the open sound in the background. Failures are logged and dropped.
func (r *Reader) playCue() {
	if r.cue == nil {
		return
	}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Warn("reader_cue_panic", slog.String("panic", fmt.Sprint(rec)))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), DefaultCueTimeout)
		defer cancel()

		if err := r.cue.Play(ctx); err != nil {
			r.logger.Debug("reader_cue_failed", slog.String("error", err.Error()))
		}
	}()
}
