package redis

import (
	"fmt"

	"github.com/hurlingham/leaguesync/internal/model"
)

// Key prefix for all league data
const keyPrefix = "leaguesync"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// timeslotKey returns the Redis key for a Timeslot
func timeslotKey(id model.TimeslotID) string {
	return fmt.Sprintf("%s:timeslot:%s", keyPrefix, id)
}

// availabilityKey returns the Redis key for an Availability row
func availabilityKey(id model.AvailabilityID) string {
	return fmt.Sprintf("%s:availability:%s", keyPrefix, id)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// Collection index keys: SETs of entity keys, used for full-collection reads

func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

func timeslotsIndexKey() string {
	return fmt.Sprintf("%s:idx:timeslots", keyPrefix)
}

func availabilityIndexKey() string {
	return fmt.Sprintf("%s:idx:availability", keyPrefix)
}

func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// Uniqueness index keys

// pairIndexKey returns the key holding the availability id for a
// (player, timeslot) pair; its existence enforces pair uniqueness
func pairIndexKey(playerID model.PlayerID, timeslotID model.TimeslotID) string {
	return fmt.Sprintf("%s:idx:pair:%s:%s", keyPrefix, playerID, timeslotID)
}

// matchForTimeslotKey returns the key holding the match id for a
// timeslot; its existence enforces one match per timeslot
func matchForTimeslotKey(timeslotID model.TimeslotID) string {
	return fmt.Sprintf("%s:idx:match_for_timeslot:%s", keyPrefix, timeslotID)
}

// tokenIndexKey returns the key mapping a share token to a player id
func tokenIndexKey(token string) string {
	return fmt.Sprintf("%s:idx:token:%s", keyPrefix, token)
}
