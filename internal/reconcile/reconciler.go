package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hurlingham/leaguesync/internal/dependencies/clock"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/storage"
)

// Config holds reconciler behavior settings
type Config struct {
	// Debounce is the trailing-edge quiet window applied to bursts of
	// change signals before a reconcile runs; 0 disables debouncing
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the reconciler
func DefaultConfig() Config {
	return Config{
		Debounce: 100 * time.Millisecond,
	}
}

// Reconciler owns the current snapshot and is its only writer.
//
// A reconcile performs the four full-collection reads and, only if all
// four succeed, replaces the snapshot atomically. Change signals carry
// no payload, so every signal triggers a full reconcile; signals that
// arrive while a reconcile is in flight coalesce into at most one
// follow-up run. On any read failure the previous snapshot is retained
// unchanged and the error is surfaced; there is no automatic retry.
type Reconciler struct {
	storage  storage.Storage
	notifier notify.Subscriber
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config

	mu       sync.RWMutex
	snapshot *model.Snapshot

	// seq stamps each reconcile attempt at its start; a completed
	// attempt never overwrites a snapshot from a later-started one
	seq atomic.Uint64

	// trigger is 1-buffered: any number of pending signals collapse
	// into a single queued run
	trigger   chan struct{}
	done      chan struct{}
	sub       notify.Subscription
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Reconciler over the given storage and change feed
func New(store storage.Storage, notifier notify.Subscriber, clk clock.Clock, cfg Config, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		storage:  store,
		notifier: notifier,
		clock:    clk,
		logger:   logger.With(slog.String("component", "reconciler")),
		cfg:      cfg,
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Snapshot returns the last committed snapshot. Before the first
// successful reconcile it returns an empty snapshot, never nil, so
// derived views always have something consistent to read.
func (r *Reconciler) Snapshot() *model.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snapshot == nil {
		return &model.Snapshot{}
	}
	return r.snapshot
}

// Reconcile fetches all four collections and replaces the snapshot.
// If any read fails the prior snapshot is kept and the error returned;
// retrying is the caller's responsibility.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	seq := r.seq.Add(1)

	timeslots, err := r.storage.ListTimeslots(ctx)
	if err != nil {
		return fmt.Errorf("fetching timeslots: %w", err)
	}
	availability, err := r.storage.ListAvailability(ctx)
	if err != nil {
		return fmt.Errorf("fetching availability: %w", err)
	}
	matches, err := r.storage.ListMatches(ctx)
	if err != nil {
		return fmt.Errorf("fetching matches: %w", err)
	}
	players, err := r.storage.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("fetching players: %w", err)
	}

	snap := &model.Snapshot{
		Players:      players,
		Timeslots:    timeslots,
		Availability: availability,
		Matches:      matches,
		Seq:          seq,
		FetchedAt:    r.clock.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot != nil && r.snapshot.Seq > seq {
		// A later-started reconcile already applied; this result is stale
		r.logger.Debug("dropping stale reconcile",
			slog.Uint64("seq", seq),
			slog.Uint64("applied_seq", r.snapshot.Seq))
		return nil
	}
	r.snapshot = snap

	r.logger.Debug("snapshot replaced",
		slog.Uint64("seq", seq),
		slog.Int("players", len(players)),
		slog.Int("timeslots", len(timeslots)),
		slog.Int("availability", len(availability)),
		slog.Int("matches", len(matches)))
	return nil
}

// Start performs the initial reconcile, subscribes to change signals,
// and launches the trigger loop. The subscription covers all four
// tables: roster changes (players, timeslots) can land from another
// process after startup and must reach the snapshot, or a newly seeded
// player's token would never resolve. The subscription and loop are
// active even if the initial reconcile fails; its error is returned so
// the caller can decide whether to proceed with an empty snapshot.
func (r *Reconciler) Start(ctx context.Context) error {
	sub, err := r.notifier.Subscribe(ctx, notify.AllTables, func(table notify.Table) {
		r.Trigger()
	})
	if err != nil {
		return fmt.Errorf("subscribing to change feed: %w", err)
	}
	r.sub = sub

	r.wg.Add(1)
	go r.run()

	if err := r.Reconcile(ctx); err != nil {
		r.logger.Error("initial reconcile failed", slog.Any("error", err))
		return err
	}
	return nil
}

// Trigger queues a reconcile. Multiple triggers while one is queued or
// in flight collapse into a single run.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Close unsubscribes from the change feed and stops the trigger loop.
// The snapshot remains readable after Close.
func (r *Reconciler) Close() error {
	var err error
	r.closeOnce.Do(func() {
		if r.sub != nil {
			err = r.sub.Unsubscribe()
		}
		close(r.done)
		r.wg.Wait()
	})
	return err
}

// run is the single reconciliation queue: triggers are consumed one at
// a time, so no two snapshot replacements from this loop ever race
func (r *Reconciler) run() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case <-r.trigger:
			if !r.awaitQuiet() {
				return
			}
			ctx := context.Background()
			if err := r.Reconcile(ctx); err != nil {
				// Previous snapshot stays in place; the next change
				// signal is the retry path
				r.logger.Error("reconcile failed, keeping previous snapshot",
					slog.Any("error", err))
			}
		}
	}
}

// awaitQuiet implements the trailing-edge debounce: the window restarts
// on every further trigger and the reconcile runs once it stays quiet
// for a full window. Returns false if the reconciler is shutting down.
func (r *Reconciler) awaitQuiet() bool {
	if r.cfg.Debounce <= 0 {
		return true
	}
	timer := r.clock.After(r.cfg.Debounce)
	for {
		select {
		case <-r.done:
			return false
		case <-r.trigger:
			timer = r.clock.After(r.cfg.Debounce)
		case <-timer:
			return true
		}
	}
}
