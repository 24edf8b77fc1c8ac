package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Channel prefix for change signals
const channelPrefix = "leaguesync:changed:"

// channelFor returns the Redis pub/sub channel for a table
func channelFor(table Table) string {
	return channelPrefix + string(table)
}

// tableForChannel maps a Redis channel name back to its table
func tableForChannel(channel string) (Table, bool) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return "", false
	}
	return Table(strings.TrimPrefix(channel, channelPrefix)), true
}

// RedisNotifier is a Notifier backed by Redis pub/sub, for deployments
// where mutations can originate in other processes (the admin CLI, a
// second server instance). Delivery is best-effort, matching Redis
// pub/sub semantics; a missed signal is corrected by the next one.
type RedisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis creates a Redis-backed notifier using an existing client
func NewRedis(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		logger: logger.With(slog.String("component", "notify-redis")),
	}
}

// Ensure RedisNotifier implements the interface
var _ Notifier = (*RedisNotifier)(nil)

// Publish emits a change signal on the table's channel
func (n *RedisNotifier) Publish(ctx context.Context, table Table) error {
	return n.client.Publish(ctx, channelFor(table), "changed").Err()
}

// Subscribe registers fn for change signals on the given tables
func (n *RedisNotifier) Subscribe(ctx context.Context, tables []Table, fn func(Table)) (Subscription, error) {
	channels := make([]string, len(tables))
	for i, t := range tables {
		channels[i] = channelFor(t)
	}

	pubsub := n.client.Subscribe(ctx, channels...)

	// Wait for the subscription to be confirmed so no signal published
	// after Subscribe returns can be missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			table, ok := tableForChannel(msg.Channel)
			if !ok {
				n.logger.Warn("ignoring message on unexpected channel",
					slog.String("channel", msg.Channel))
				continue
			}
			fn(table)
		}
	}()

	return &redisSubscription{pubsub: pubsub}, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
}

// Unsubscribe closes the underlying pub/sub connection
func (s *redisSubscription) Unsubscribe() error {
	return s.pubsub.Close()
}
