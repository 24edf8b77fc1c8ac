package views

import "github.com/hurlingham/leaguesync/internal/model"

// SlotStatus classifies a timeslot from one player's perspective
type SlotStatus string

const (
	// SlotOpen: no match, the player has not marked themselves available
	SlotOpen SlotStatus = "open"
	// SlotMine: no match, the player is marked available
	SlotMine SlotStatus = "mine"
	// SlotLocked: a match exists and the player is not in it
	SlotLocked SlotStatus = "locked"
	// SlotLockedMine: a match exists and the player is one of the pair
	SlotLockedMine SlotStatus = "locked_mine"
)

// TimeslotStatus classifies the timeslot for the given player. Lock
// state wins over availability: once matched, the slot reports locked
// regardless of any availability row.
func TimeslotStatus(snap *model.Snapshot, playerID model.PlayerID, timeslotID model.TimeslotID) SlotStatus {
	if match, ok := MatchForTimeslot(snap, timeslotID); ok {
		if match.Involves(playerID) {
			return SlotLockedMine
		}
		return SlotLocked
	}
	if _, ok := MyAvailabilityIndex(snap, playerID)[timeslotID]; ok {
		return SlotMine
	}
	return SlotOpen
}
