package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrShareTokenExists   = errors.New("share token already in use")
	ErrUnresolvedIdentity = errors.New("no player resolved for token")

	// Timeslot errors
	ErrTimeslotNotFound = errors.New("timeslot not found")
	ErrInvalidSlotDate  = errors.New("slot date must be YYYY-MM-DD")
	ErrEmptyPeriod      = errors.New("period must not be empty")
	ErrTimeslotLocked   = errors.New("timeslot is locked by a match")

	// Availability errors
	ErrAvailabilityNotFound  = errors.New("availability not found")
	ErrDuplicateAvailability = errors.New("availability already exists for player and timeslot")

	// Match errors
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchExists         = errors.New("match already exists for timeslot")
	ErrInsufficientPlayers = errors.New("not enough available players to pair")
	ErrSelfMatch           = errors.New("cannot pair a player with themselves")
)
