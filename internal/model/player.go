package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a league participant.
// Players are seeded by an admin and read-only to the signup flow;
// the ShareToken is the player's only credential (an opaque string
// carried in their personal link).
type Player struct {
	ID         PlayerID  `json:"id"`
	Name       string    `json:"name"`
	ShareToken string    `json:"share_token"`
	CreatedAt  time.Time `json:"created_at"`
}
