package storage

import (
	"context"

	"github.com/hurlingham/leaguesync/internal/model"
)

// Storage defines the interface for data persistence.
//
// The four List operations are the full-collection reads used by the
// reconciler; ListTimeslots returns rows ordered by (SlotDate, Period).
// Insert/DeleteAvailability are the only mutations the signup flow
// performs. The Save/Delete operations exist for the admin roster
// tooling and the pairing scheduler.
type Storage interface {
	// Full-collection reads (reconcile)
	ListPlayers(ctx context.Context) ([]model.Player, error)
	ListTimeslots(ctx context.Context) ([]model.Timeslot, error)
	ListAvailability(ctx context.Context) ([]model.Availability, error)
	ListMatches(ctx context.Context) ([]model.Match, error)

	// Availability mutations (signup flow)
	InsertAvailability(ctx context.Context, avail model.Availability) error
	DeleteAvailability(ctx context.Context, id model.AvailabilityID) error

	// Seeding and scheduling operations
	SavePlayer(ctx context.Context, player *model.Player) error
	SaveTimeslot(ctx context.Context, timeslot *model.Timeslot) error
	SaveMatch(ctx context.Context, match *model.Match) error
	DeleteMatch(ctx context.Context, id model.MatchID) error
}
