// Package views computes derived read models from a snapshot. Every
// function is pure and deterministic: views are recomputed from the
// current snapshot on every observation rather than incrementally
// maintained, which trades a little CPU for immunity to drift bugs.
//
// Edge policy: a dangling reference (a match whose player or timeslot
// is missing from the snapshot, e.g. from a mid-flight fetch elsewhere)
// degrades to an omitted field or placeholder, never an error.
package views

import (
	"sort"

	"github.com/hurlingham/leaguesync/internal/model"
)

// DateGroup is the timeslots of a single calendar date, in period order
type DateGroup struct {
	Date      string
	Timeslots []model.Timeslot
}

// GroupedTimeslots buckets the snapshot's timeslots by date. Every
// timeslot lands in exactly one bucket; buckets are ordered by date
// and preserve the snapshot's (SlotDate, Period) ordering within.
func GroupedTimeslots(snap *model.Snapshot) []DateGroup {
	byDate := make(map[string][]model.Timeslot)
	for _, ts := range snap.Timeslots {
		byDate[ts.SlotDate] = append(byDate[ts.SlotDate], ts)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make([]DateGroup, 0, len(dates))
	for _, date := range dates {
		slots := byDate[date]
		// Defensive: snapshot timeslots arrive ordered from storage,
		// but a view must not depend on that holding
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].Less(slots[j])
		})
		groups = append(groups, DateGroup{Date: date, Timeslots: slots})
	}
	return groups
}

// MatchForTimeslot returns the match locking the given timeslot, if
// any. The one-match-per-timeslot invariant is enforced upstream; if a
// snapshot breaches it the first match wins and the view stays usable.
func MatchForTimeslot(snap *model.Snapshot, timeslotID model.TimeslotID) (model.Match, bool) {
	for _, m := range snap.Matches {
		if m.TimeslotID == timeslotID {
			return m, true
		}
	}
	return model.Match{}, false
}

// MyAvailabilityIndex maps timeslot id to the player's own availability
// row id. An empty player id (unresolved identity) yields an empty map.
func MyAvailabilityIndex(snap *model.Snapshot, playerID model.PlayerID) map[model.TimeslotID]model.AvailabilityID {
	index := make(map[model.TimeslotID]model.AvailabilityID)
	if playerID == "" {
		return index
	}
	for _, a := range snap.Availability {
		if a.PlayerID == playerID {
			index[a.TimeslotID] = a.ID
		}
	}
	return index
}

// ConfirmedMatch is a match involving the viewing player, joined with
// its timeslot and the opponent's display name. Timeslot is nil and
// OpponentName empty when the snapshot lacks the referenced rows.
type ConfirmedMatch struct {
	Match        model.Match
	Timeslot     *model.Timeslot
	OpponentName string
}

// MyConfirmedMatches returns the matches the player is part of, in
// timeslot order (matches with a missing timeslot sort last)
func MyConfirmedMatches(snap *model.Snapshot, playerID model.PlayerID) []ConfirmedMatch {
	if playerID == "" {
		return nil
	}

	var confirmed []ConfirmedMatch
	for _, m := range snap.Matches {
		if !m.Involves(playerID) {
			continue
		}

		cm := ConfirmedMatch{Match: m}
		if ts, ok := snap.TimeslotByID(m.TimeslotID); ok {
			cm.Timeslot = &ts
		}
		if opponent, ok := snap.PlayerByID(m.Opponent(playerID)); ok {
			cm.OpponentName = opponent.Name
		}
		confirmed = append(confirmed, cm)
	}

	sort.Slice(confirmed, func(i, j int) bool {
		ti, tj := confirmed[i].Timeslot, confirmed[j].Timeslot
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.Less(*tj)
		}
	})
	return confirmed
}
