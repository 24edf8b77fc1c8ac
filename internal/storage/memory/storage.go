package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      map[model.PlayerID]model.Player
	timeslots    map[model.TimeslotID]model.Timeslot
	availability map[model.AvailabilityID]model.Availability
	matches      map[model.MatchID]model.Match

	// Uniqueness indexes: one availability row per (player, timeslot),
	// one match per timeslot, one player per share token
	pairIndex       map[pairKey]model.AvailabilityID
	matchByTimeslot map[model.TimeslotID]model.MatchID
	tokenIndex      map[string]model.PlayerID
}

type pairKey struct {
	playerID   model.PlayerID
	timeslotID model.TimeslotID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:         make(map[model.PlayerID]model.Player),
		timeslots:       make(map[model.TimeslotID]model.Timeslot),
		availability:    make(map[model.AvailabilityID]model.Availability),
		matches:         make(map[model.MatchID]model.Match),
		pairIndex:       make(map[pairKey]model.AvailabilityID),
		matchByTimeslot: make(map[model.TimeslotID]model.MatchID),
		tokenIndex:      make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Full-collection reads

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	return players, nil
}

func (s *Storage) ListTimeslots(ctx context.Context) ([]model.Timeslot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	timeslots := make([]model.Timeslot, 0, len(s.timeslots))
	for _, t := range s.timeslots {
		timeslots = append(timeslots, t)
	}
	sort.Slice(timeslots, func(i, j int) bool {
		return timeslots[i].Less(timeslots[j])
	})
	return timeslots, nil
}

func (s *Storage) ListAvailability(ctx context.Context) ([]model.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]model.Availability, 0, len(s.availability))
	for _, a := range s.availability {
		rows = append(rows, a)
	}
	return rows, nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, m)
	}
	return matches, nil
}

// Availability mutations

func (s *Storage) InsertAvailability(ctx context.Context, avail model.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{playerID: avail.PlayerID, timeslotID: avail.TimeslotID}
	if _, exists := s.pairIndex[key]; exists {
		return model.ErrDuplicateAvailability
	}
	s.availability[avail.ID] = avail
	s.pairIndex[key] = avail.ID
	return nil
}

// DeleteAvailability is idempotent: deleting a row that no longer
// exists (e.g. removed remotely between snapshot and toggle) succeeds
func (s *Storage) DeleteAvailability(ctx context.Context, id model.AvailabilityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	avail, ok := s.availability[id]
	if !ok {
		return nil
	}
	delete(s.availability, id)
	delete(s.pairIndex, pairKey{playerID: avail.PlayerID, timeslotID: avail.TimeslotID})
	return nil
}

// Seeding and scheduling operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.tokenIndex[player.ShareToken]; ok && existing != player.ID {
		return model.ErrShareTokenExists
	}
	if prev, ok := s.players[player.ID]; ok && prev.ShareToken != player.ShareToken {
		delete(s.tokenIndex, prev.ShareToken)
	}
	s.players[player.ID] = *player
	s.tokenIndex[player.ShareToken] = player.ID
	return nil
}

func (s *Storage) SaveTimeslot(ctx context.Context, timeslot *model.Timeslot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeslots[timeslot.ID] = *timeslot
	return nil
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.matchByTimeslot[match.TimeslotID]; ok && existing != match.ID {
		return model.ErrMatchExists
	}
	s.matches[match.ID] = *match
	s.matchByTimeslot[match.TimeslotID] = match.ID
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil
	}
	delete(s.matches, id)
	delete(s.matchByTimeslot, match.TimeslotID)
	return nil
}
