package model

// AvailabilityID uniquely identifies an availability row
type AvailabilityID string

// Availability records that a player can play a given timeslot.
// At most one row exists per (PlayerID, TimeslotID) pair; the pair
// uniqueness is enforced by storage and re-checked defensively by the
// availability gateway before insert.
type Availability struct {
	ID         AvailabilityID `json:"id"`
	PlayerID   PlayerID       `json:"player_id"`
	TimeslotID TimeslotID     `json:"timeslot_id"`
}
