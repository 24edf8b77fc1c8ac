package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// Match is a confirmed pairing of two players to one timeslot.
// At most one match exists per timeslot; its existence locks the
// timeslot against further availability edits.
type Match struct {
	ID         MatchID    `json:"id"`
	TimeslotID TimeslotID `json:"timeslot_id"`
	Player1ID  PlayerID   `json:"player1_id"`
	Player2ID  PlayerID   `json:"player2_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Involves reports whether the given player is one of the two participants
func (m Match) Involves(playerID PlayerID) bool {
	return playerID != "" && (m.Player1ID == playerID || m.Player2ID == playerID)
}

// Opponent returns the other participant's ID, or empty if the given
// player is not part of the match
func (m Match) Opponent(playerID PlayerID) PlayerID {
	switch playerID {
	case m.Player1ID:
		return m.Player2ID
	case m.Player2ID:
		return m.Player1ID
	default:
		return ""
	}
}
