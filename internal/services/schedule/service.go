package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/hurlingham/leaguesync/internal/dependencies/clock"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/storage"
)

// Service is the pairing scheduler: it turns declared availability
// into confirmed matches, locking the paired timeslots
type Service struct {
	storage   storage.Storage
	clock     clock.Clock
	publisher notify.Publisher
	logger    *slog.Logger
}

// New creates a new scheduling service
func New(store storage.Storage, clk clock.Clock, publisher notify.Publisher, logger *slog.Logger) *Service {
	return &Service{
		storage:   store,
		clock:     clk,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "schedule")),
	}
}

// PairTimeslot pairs two available players into a match for the
// timeslot. Candidates with fewer confirmed matches are preferred, and
// a pair that has already played each other is avoided when any other
// choice exists, to keep the round-robin fair.
func (s *Service) PairTimeslot(ctx context.Context, timeslotID model.TimeslotID) (*model.Match, error) {
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.TimeslotID == timeslotID {
			return nil, model.ErrMatchExists
		}
	}

	rows, err := s.storage.ListAvailability(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []model.PlayerID
	for _, a := range rows {
		if a.TimeslotID == timeslotID {
			candidates = append(candidates, a.PlayerID)
		}
	}
	if len(candidates) < 2 {
		return nil, model.ErrInsufficientPlayers
	}

	p1, p2 := choosePair(candidates, matches)
	if p1 == p2 {
		return nil, model.ErrSelfMatch
	}

	match := &model.Match{
		ID:         model.MatchID(uuid.NewString()),
		TimeslotID: timeslotID,
		Player1ID:  p1,
		Player2ID:  p2,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	s.publish(ctx)
	s.logger.Info("timeslot paired",
		slog.String("timeslot_id", string(timeslotID)),
		slog.String("player1_id", string(p1)),
		slog.String("player2_id", string(p2)))
	return match, nil
}

// PairAll sweeps every timeslot, pairing where two or more players are
// available and no match exists yet. Slots that cannot be paired are
// skipped; storage failures abort the sweep.
func (s *Service) PairAll(ctx context.Context) ([]model.Match, error) {
	timeslots, err := s.storage.ListTimeslots(ctx)
	if err != nil {
		return nil, err
	}

	var paired []model.Match
	for _, ts := range timeslots {
		match, err := s.PairTimeslot(ctx, ts.ID)
		if errors.Is(err, model.ErrMatchExists) || errors.Is(err, model.ErrInsufficientPlayers) {
			continue
		}
		if err != nil {
			return paired, err
		}
		paired = append(paired, *match)
	}
	return paired, nil
}

// UnpairTimeslot deletes the timeslot's match, unlocking it for
// availability edits again
func (s *Service) UnpairTimeslot(ctx context.Context, timeslotID model.TimeslotID) error {
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return err
	}

	for _, m := range matches {
		if m.TimeslotID == timeslotID {
			if err := s.storage.DeleteMatch(ctx, m.ID); err != nil {
				return err
			}
			s.publish(ctx)
			s.logger.Info("timeslot unpaired", slog.String("timeslot_id", string(timeslotID)))
			return nil
		}
	}
	return model.ErrMatchNotFound
}

// choosePair picks two distinct candidates, preferring players with
// fewer confirmed matches and avoiding rematches when possible
func choosePair(candidates []model.PlayerID, matches []model.Match) (model.PlayerID, model.PlayerID) {
	counts := make(map[model.PlayerID]int)
	for _, m := range matches {
		counts[m.Player1ID]++
		counts[m.Player2ID]++
	}

	ordered := append([]model.PlayerID(nil), candidates...)
	sort.Slice(ordered, func(i, j int) bool {
		if counts[ordered[i]] != counts[ordered[j]] {
			return counts[ordered[i]] < counts[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})

	first := ordered[0]
	played := make(map[model.PlayerID]bool)
	for _, m := range matches {
		if m.Player1ID == first {
			played[m.Player2ID] = true
		}
		if m.Player2ID == first {
			played[m.Player1ID] = true
		}
	}

	for _, second := range ordered[1:] {
		if second != first && !played[second] {
			return first, second
		}
	}
	// Everyone left has already played first; take the least-matched
	for _, second := range ordered[1:] {
		if second != first {
			return first, second
		}
	}
	return first, first
}

func (s *Service) publish(ctx context.Context) {
	if err := s.publisher.Publish(ctx, notify.TableMatches); err != nil {
		s.logger.Warn("publishing match change failed", slog.Any("error", err))
	}
}
