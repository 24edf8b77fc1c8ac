package availability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	"github.com/hurlingham/leaguesync/internal/storage"
	"github.com/hurlingham/leaguesync/internal/views"
)

// ToggleAction is the direction a toggle resolved to
type ToggleAction string

const (
	// ActionSet means an availability row was created
	ActionSet ToggleAction = "set"
	// ActionUnset means the player's existing row was deleted
	ActionUnset ToggleAction = "unset"
)

// ToggleResult reports what a successful toggle did. Reconciled is
// false when the write landed but the follow-up reconcile failed; the
// previous snapshot stays visible until the next reconcile succeeds.
type ToggleResult struct {
	Action     ToggleAction
	Reconciled bool
}

// Gateway applies availability toggles. It is deliberately not an
// optimistic-UI design: after a write it re-derives truth via a fresh
// reconcile instead of locally flipping state, trading a little
// latency for freedom from local/remote divergence.
type Gateway struct {
	storage    storage.Storage
	reconciler *reconcile.Reconciler
	publisher  notify.Publisher
	logger     *slog.Logger
}

// NewGateway creates a new availability Gateway
func NewGateway(store storage.Storage, reconciler *reconcile.Reconciler, publisher notify.Publisher, logger *slog.Logger) *Gateway {
	return &Gateway{
		storage:    store,
		reconciler: reconciler,
		publisher:  publisher,
		logger:     logger.With(slog.String("component", "availability-gateway")),
	}
}

// Toggle flips the (player, timeslot) availability state: Unset
// inserts a row, Set deletes it. A timeslot locked by a match rejects
// the toggle before any storage call, even if the caller's view was
// stale when it issued the request.
func (g *Gateway) Toggle(ctx context.Context, playerID model.PlayerID, timeslotID model.TimeslotID) (ToggleResult, error) {
	if playerID == "" {
		return ToggleResult{}, model.ErrUnresolvedIdentity
	}

	snap := g.reconciler.Snapshot()

	if _, ok := snap.TimeslotByID(timeslotID); !ok {
		return ToggleResult{}, model.ErrTimeslotNotFound
	}

	if _, locked := views.MatchForTimeslot(snap, timeslotID); locked {
		return ToggleResult{}, model.ErrTimeslotLocked
	}

	var action ToggleAction
	if existingID, ok := views.MyAvailabilityIndex(snap, playerID)[timeslotID]; ok {
		if err := g.storage.DeleteAvailability(ctx, existingID); err != nil {
			// Nothing changed; no reconcile to trigger
			return ToggleResult{}, err
		}
		action = ActionUnset
	} else {
		avail := model.Availability{
			ID:         model.AvailabilityID(uuid.NewString()),
			PlayerID:   playerID,
			TimeslotID: timeslotID,
		}
		err := g.storage.InsertAvailability(ctx, avail)
		if errors.Is(err, model.ErrDuplicateAvailability) {
			// The snapshot was stale and a row already exists, likely
			// inserted from another device; the end state is Set either
			// way, so fall through to the reconcile
			g.logger.Warn("duplicate availability insert collapsed",
				slog.String("player_id", string(playerID)),
				slog.String("timeslot_id", string(timeslotID)))
		} else if err != nil {
			return ToggleResult{}, err
		}
		action = ActionSet
	}

	if err := g.publisher.Publish(ctx, notify.TableAvailability); err != nil {
		g.logger.Warn("publishing availability change failed", slog.Any("error", err))
	}

	result := ToggleResult{Action: action, Reconciled: true}
	if err := g.reconciler.Reconcile(ctx); err != nil {
		// The write stood; only the view refresh failed. The stale
		// snapshot persists until the next reconcile.
		g.logger.Error("post-toggle reconcile failed", slog.Any("error", err))
		result.Reconciled = false
	}
	return result, nil
}
