package roster

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hurlingham/leaguesync/internal/dependencies/clock"
	"github.com/hurlingham/leaguesync/internal/dependencies/random"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/storage"
)

const (
	// ShareTokenLength is the length of generated share tokens
	ShareTokenLength = 24
	// ShareTokenAlphabet is the characters used in share tokens
	// (URL-safe, avoids confusing chars)
	ShareTokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
)

// Service seeds the league roster: players with their share tokens,
// and the timeslots of the season calendar
type Service struct {
	storage   storage.Storage
	clock     clock.Clock
	random    random.Random
	publisher notify.Publisher
	logger    *slog.Logger
}

// New creates a new roster service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, publisher notify.Publisher, logger *slog.Logger) *Service {
	return &Service{
		storage:   store,
		clock:     clk,
		random:    rnd,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "roster")),
	}
}

// CreatePlayer adds a player with a freshly generated share token,
// retrying generation on the unlikely token collision
func (s *Service) CreatePlayer(ctx context.Context, name string) (*model.Player, error) {
	for {
		player := &model.Player{
			ID:         model.PlayerID(uuid.NewString()),
			Name:       name,
			ShareToken: s.random.String(ShareTokenLength, ShareTokenAlphabet),
			CreatedAt:  s.clock.Now(),
		}

		err := s.storage.SavePlayer(ctx, player)
		if errors.Is(err, model.ErrShareTokenExists) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.publish(ctx, notify.TablePlayers)
		s.logger.Info("player created",
			slog.String("player_id", string(player.ID)),
			slog.String("name", player.Name))
		return player, nil
	}
}

// CreateTimeslot adds a timeslot for the given calendar date and period
func (s *Service) CreateTimeslot(ctx context.Context, slotDate, period string) (*model.Timeslot, error) {
	if _, err := time.Parse(model.SlotDateFormat, slotDate); err != nil {
		return nil, model.ErrInvalidSlotDate
	}
	if period == "" {
		return nil, model.ErrEmptyPeriod
	}

	timeslot := &model.Timeslot{
		ID:        model.TimeslotID(uuid.NewString()),
		SlotDate:  slotDate,
		Period:    period,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveTimeslot(ctx, timeslot); err != nil {
		return nil, err
	}

	s.publish(ctx, notify.TableTimeslots)
	s.logger.Info("timeslot created",
		slog.String("timeslot_id", string(timeslot.ID)),
		slog.String("slot_date", timeslot.SlotDate),
		slog.String("period", timeslot.Period))
	return timeslot, nil
}

// Players lists the current roster
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Timeslots lists the season calendar in (date, period) order
func (s *Service) Timeslots(ctx context.Context) ([]model.Timeslot, error) {
	return s.storage.ListTimeslots(ctx)
}

func (s *Service) publish(ctx context.Context, table notify.Table) {
	if err := s.publisher.Publish(ctx, table); err != nil {
		s.logger.Warn("publishing change failed",
			slog.String("table", string(table)),
			slog.Any("error", err))
	}
}
