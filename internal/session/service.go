// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
	"github.com/taibuivan/revenuegear/internal/reader"
	"github.com/taibuivan/revenuegear/pkg/uuidv7"
)

// persistTimeout bounds one snapshot write.
const persistTimeout = 2 * time.Second

// DeckSource resolves a deck by slug; "" names the default deck.
type DeckSource interface {
	Get(ctx context.Context, slug string) (*deck.Deck, error)
}

// Options configures a [Service].
type Options struct {
	Timing reader.Timing
	// TTL is both the idle eviction age and the snapshot expiry.
	TTL time.Duration
	// Clock drives reader timers and idle tracking. Defaults to the wall clock.
	Clock reader.Clock
}

// # Service Layer

// Service owns the live reader sessions of this process.
type Service struct {
	decks  DeckSource
	repo   Repository
	logger *slog.Logger
	timing reader.Timing
	ttl    time.Duration
	clock  reader.Clock

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService constructs a session [Service]. repo may be nil to keep
// sessions purely in memory.
func NewService(decks DeckSource, repo Repository, logger *slog.Logger, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = reader.SystemClock{}
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}

	return &Service{
		decks:    decks,
		repo:     repo,
		logger:   logger,
		timing:   opts.Timing,
		ttl:      opts.TTL,
		clock:    opts.Clock,
		sessions: make(map[string]*Session),
	}
}

// # Session Lifecycle

/*
Create starts a closed reader over the named deck.

Parameters:
  - slug: string ("" selects the default deck)

Returns:
  - Result: The new session's state and view
  - error: NOT_FOUND for an unknown deck
*/
func (service *Service) Create(ctx context.Context, slug string) (Result, error) {
	d, err := service.decks.Get(ctx, slug)
	if err != nil {
		return Result{}, err
	}

	sess, err := service.build(uuidv7.New(), d, 0)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}

	service.mu.Lock()
	service.sessions[sess.ID] = sess
	service.mu.Unlock()

	// Persist the initial snapshot so any replica can serve the next request.
	service.persist(sess, sess.Reader.Snapshot())

	service.logger.Info("reader_session_created",
		slog.String("session_id", sess.ID),
		slog.String("deck", d.Slug),
	)

	return service.result(sess, false), nil
}

// Get returns the current state of a session.
func (service *Service) Get(ctx context.Context, id string) (Result, error) {
	sess, err := service.lookup(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return service.result(sess, false), nil
}

/*
Command sends a navigation command to a session.

Commands that the reader absorbs (wrong phase, debounce, deck boundary)
are not errors; the result reports Accepted=false. An accepted open
carries the deck's sound as the cue for the client to play.
*/
func (service *Service) Command(ctx context.Context, id string, command Command) (Result, error) {
	sess, err := service.lookup(ctx, id)
	if err != nil {
		return Result{}, err
	}

	var accepted bool
	switch command {
	case CommandOpen:
		accepted = sess.Reader.Open()
	case CommandNext:
		accepted = sess.Reader.Next()
	case CommandPrev:
		accepted = sess.Reader.Prev()
	case CommandClose:
		accepted = sess.Reader.Close()
	default:
		return Result{}, apperr.ValidationError("Unknown reader command")
	}

	result := service.result(sess, accepted)
	if command == CommandOpen && accepted {
		result.Cue = sess.Reader.Deck().Sound
	}
	return result, nil
}

// Gesture routes a swipe to a session.
func (service *Service) Gesture(ctx context.Context, id string, start, end reader.Point) (Result, error) {
	sess, err := service.lookup(ctx, id)
	if err != nil {
		return Result{}, err
	}

	swipe, accepted := sess.Reader.HandleGesture(start, end)
	result := service.result(sess, accepted)
	result.Swipe = swipe.String()
	return result, nil
}

// Delete ends a session and drops its snapshot.
func (service *Service) Delete(ctx context.Context, id string) error {
	service.mu.Lock()
	sess, ok := service.sessions[id]
	delete(service.sessions, id)
	service.mu.Unlock()

	if ok {
		service.retire(sess)
	} else if service.repo == nil {
		return apperr.NotFound("Reader session")
	} else if _, err := service.repo.Load(ctx, id); err != nil {
		return err
	}

	if service.repo != nil {
		if err := service.repo.Delete(ctx, id); err != nil {
			return apperr.Internal(err)
		}
	}

	service.logger.Info("reader_session_deleted", slog.String("session_id", id))
	return nil
}

// Len returns the number of sessions held in memory.
func (service *Service) Len() int {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return len(service.sessions)
}

// # Idle Collection

// Sweep evicts sessions idle for longer than the TTL. Their snapshots stay
// in the repository until they expire there.
func (service *Service) Sweep() int {
	cutoff := service.clock.Now().Add(-service.ttl)

	var idle []*Session
	service.mu.Lock()
	for id, sess := range service.sessions {
		if sess.LastSeen().Before(cutoff) {
			idle = append(idle, sess)
			delete(service.sessions, id)
		}
	}
	service.mu.Unlock()

	for _, sess := range idle {
		service.retire(sess)
	}
	if len(idle) > 0 {
		service.logger.Info("reader_sessions_swept", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// RunSweeper calls [Service.Sweep] every interval until ctx is done.
func (service *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.SessionSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			service.Sweep()
		}
	}
}

// # Internals

func (service *Service) build(id string, d *deck.Deck, version uint64) (*Session, error) {
	r, err := reader.New(d,
		reader.WithClock(service.clock),
		reader.WithTiming(service.timing),
		reader.WithLogger(service.logger.With(slog.String("session_id", id))),
		reader.WithInitialVersion(version),
	)
	if err != nil {
		return nil, err
	}

	now := service.clock.Now()
	sess := &Session{ID: id, DeckSlug: d.Slug, Reader: r, CreatedAt: now, lastSeen: now}
	sess.stop = r.OnChange(func(snap reader.Snapshot) {
		service.persist(sess, snap)
	})
	return sess, nil
}

// lookup finds a live session or rebuilds it from its snapshot.
func (service *Service) lookup(ctx context.Context, id string) (*Session, error) {
	service.mu.RLock()
	sess, ok := service.sessions[id]
	service.mu.RUnlock()
	if ok {
		sess.touch(service.clock.Now())
		return sess, nil
	}

	if service.repo == nil {
		return nil, apperr.NotFound("Reader session")
	}
	return service.rehydrate(ctx, id)
}

func (service *Service) rehydrate(ctx context.Context, id string) (*Session, error) {
	rec, err := service.repo.Load(ctx, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	d, err := service.decks.Get(ctx, rec.DeckSlug)
	if err != nil {
		return nil, err
	}

	sess, err := service.build(rec.ID, d, rec.Version)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if rec.State.IsOpen() {
		sess.Reader.Resume(rec.State.Index)
	}

	service.mu.Lock()
	if existing, ok := service.sessions[id]; ok {
		// Another request rebuilt it first.
		service.mu.Unlock()
		sess.stop()
		return existing, nil
	}
	service.sessions[id] = sess
	service.mu.Unlock()

	service.logger.Info("reader_session_rehydrated",
		slog.String("session_id", id),
		slog.String("state", sess.Reader.Snapshot().Name()),
	)
	return sess, nil
}

// retire stops persisting a session and cancels its timers.
func (service *Service) retire(sess *Session) {
	sess.stop()
	sess.Reader.Close()
}

func (service *Service) persist(sess *Session, snap reader.Snapshot) {
	if service.repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	rec := Record{
		ID:        sess.ID,
		DeckSlug:  sess.DeckSlug,
		State:     snap.State,
		Version:   snap.Version,
		UpdatedAt: service.clock.Now(),
	}
	if _, err := service.repo.Save(ctx, rec, service.ttl); err != nil {
		service.logger.Error("reader_session_persist_failed",
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (service *Service) result(sess *Session, accepted bool) Result {
	snap := sess.Reader.Snapshot()
	return Result{
		ID:       sess.ID,
		Deck:     sess.DeckSlug,
		Accepted: accepted,
		State:    snap,
		View:     reader.Render(snap.State, sess.Reader.Deck()),
	}
}
