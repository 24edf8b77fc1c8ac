package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; each collection carries a SET
// index of its entity keys so full-collection reads are a SMEMBERS
// followed by an MGET.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Client exposes the underlying client so the change notifier can
// share the same connection pool
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// listEntities reads every member of an index set via MGET and
// unmarshals each value into a T
func listEntities[T any](ctx context.Context, client *redis.Client, indexKey string) ([]T, error) {
	keys, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []T{}, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entities := make([]T, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Entity deleted but index not yet cleaned
		}
		var entity T
		if err := json.Unmarshal([]byte(val.(string)), &entity); err != nil {
			continue // Skip invalid data
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

// Full-collection reads

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	return listEntities[model.Player](ctx, s.client, playersIndexKey())
}

func (s *Storage) ListTimeslots(ctx context.Context) ([]model.Timeslot, error) {
	timeslots, err := listEntities[model.Timeslot](ctx, s.client, timeslotsIndexKey())
	if err != nil {
		return nil, err
	}
	sort.Slice(timeslots, func(i, j int) bool {
		return timeslots[i].Less(timeslots[j])
	})
	return timeslots, nil
}

func (s *Storage) ListAvailability(ctx context.Context) ([]model.Availability, error) {
	return listEntities[model.Availability](ctx, s.client, availabilityIndexKey())
}

func (s *Storage) ListMatches(ctx context.Context) ([]model.Match, error) {
	return listEntities[model.Match](ctx, s.client, matchesIndexKey())
}

// Availability mutations

func (s *Storage) InsertAvailability(ctx context.Context, avail model.Availability) error {
	data, err := json.Marshal(avail)
	if err != nil {
		return err
	}

	// Claim the (player, timeslot) pair first; SETNX makes concurrent
	// inserts for the same pair collapse to a single row
	pairKey := pairIndexKey(avail.PlayerID, avail.TimeslotID)
	claimed, err := s.client.SetNX(ctx, pairKey, string(avail.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		orphaned, err := s.claimIsOrphaned(ctx, pairKey, func(holder string) string {
			return availabilityKey(model.AvailabilityID(holder))
		})
		if err != nil {
			return err
		}
		if !orphaned {
			return model.ErrDuplicateAvailability
		}
		// A previous insert claimed the pair but failed before writing
		// its row; take the claim over so the pair is not wedged
		if err := s.client.Set(ctx, pairKey, string(avail.ID), 0).Err(); err != nil {
			return err
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, availabilityKey(avail.ID), data, 0)
	pipe.SAdd(ctx, availabilityIndexKey(), availabilityKey(avail.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		// Release the claim so a retry is not met with a phantom duplicate
		_ = s.client.Del(ctx, pairKey).Err()
		return err
	}
	return nil
}

// claimIsOrphaned reports whether a uniqueness claim points at an
// entity row that does not exist, i.e. a writer claimed it and then
// failed before its row write landed
func (s *Storage) claimIsOrphaned(ctx context.Context, claimKey string, entityKey func(string) string) (bool, error) {
	holder, err := s.client.Get(ctx, claimKey).Result()
	if errors.Is(err, redis.Nil) {
		// Claim vanished between SETNX and here; treat as reclaimable
		return true, nil
	}
	if err != nil {
		return false, err
	}
	exists, err := s.client.Exists(ctx, entityKey(holder)).Result()
	if err != nil {
		return false, err
	}
	return exists == 0, nil
}

func (s *Storage) DeleteAvailability(ctx context.Context, id model.AvailabilityID) error {
	data, err := s.client.Get(ctx, availabilityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil // Already deleted, e.g. by another client
		}
		return err
	}

	var avail model.Availability
	if err := json.Unmarshal(data, &avail); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, availabilityKey(id))
	pipe.SRem(ctx, availabilityIndexKey(), availabilityKey(id))
	pipe.Del(ctx, pairIndexKey(avail.PlayerID, avail.TimeslotID))
	_, err = pipe.Exec(ctx)
	return err
}

// Seeding and scheduling operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Share tokens are the identity credential and must stay unique
	existing, err := s.client.Get(ctx, tokenIndexKey(player.ShareToken)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && existing != string(player.ID) {
		return model.ErrShareTokenExists
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, playersIndexKey(), playerKey(player.ID))
	pipe.Set(ctx, tokenIndexKey(player.ShareToken), string(player.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveTimeslot(ctx context.Context, timeslot *model.Timeslot) error {
	data, err := json.Marshal(timeslot)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, timeslotKey(timeslot.ID), data, 0)
	pipe.SAdd(ctx, timeslotsIndexKey(), timeslotKey(timeslot.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	// Claim the timeslot; one match per timeslot is the locking invariant
	slotKey := matchForTimeslotKey(match.TimeslotID)
	claimed, err := s.client.SetNX(ctx, slotKey, string(match.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		holder, err := s.client.Get(ctx, slotKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if holder != string(match.ID) {
			orphaned, err := s.claimIsOrphaned(ctx, slotKey, func(h string) string {
				return matchKey(model.MatchID(h))
			})
			if err != nil {
				return err
			}
			if !orphaned {
				return model.ErrMatchExists
			}
			// The holder's row never landed; take the claim over so the
			// timeslot is not wedged
			if err := s.client.Set(ctx, slotKey, string(match.ID), 0).Err(); err != nil {
				return err
			}
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(match.ID), data, 0)
	pipe.SAdd(ctx, matchesIndexKey(), matchKey(match.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		if claimed {
			// Release the freshly taken claim so a retry can lock the
			// timeslot again
			_ = s.client.Del(ctx, slotKey).Err()
		}
		return err
	}
	return nil
}

func (s *Storage) DeleteMatch(ctx context.Context, id model.MatchID) error {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, matchKey(id))
	pipe.SRem(ctx, matchesIndexKey(), matchKey(id))
	pipe.Del(ctx, matchForTimeslotKey(match.TimeslotID))
	_, err = pipe.Exec(ctx)
	return err
}
