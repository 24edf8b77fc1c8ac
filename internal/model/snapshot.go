package model

import "time"

// Snapshot is the full in-memory copy of all four collections at a
// point in time. It is built once per reconcile and replaced wholesale,
// never patched in place; consumers treat it as immutable.
//
// Seq is a monotonic stamp assigned when the reconcile that produced
// the snapshot started. The reconciler uses it to drop a slow reconcile
// that would otherwise overwrite a newer snapshot.
type Snapshot struct {
	Players      []Player
	Timeslots    []Timeslot
	Availability []Availability
	Matches      []Match

	Seq       uint64
	FetchedAt time.Time
}

// PlayerByID looks up a player in the snapshot
func (s *Snapshot) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// TimeslotByID looks up a timeslot in the snapshot
func (s *Snapshot) TimeslotByID(id TimeslotID) (Timeslot, bool) {
	for _, t := range s.Timeslots {
		if t.ID == id {
			return t, true
		}
	}
	return Timeslot{}, false
}
