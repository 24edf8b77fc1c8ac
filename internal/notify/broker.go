package notify

import (
	"context"
	"log/slog"
	"sync"
)

const signalBufferSize = 16

// Broker is an in-process Notifier for single-process deployments.
// Signals are fanned out to per-subscription buffered channels and
// dropped if a subscriber is too slow to drain them; a dropped signal
// is harmless because every signal means the same thing ("re-fetch").
type Broker struct {
	mu     sync.RWMutex
	subs   map[*brokerSubscription]struct{}
	logger *slog.Logger
}

// NewBroker creates a new in-process broker
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[*brokerSubscription]struct{}),
		logger: logger.With(slog.String("component", "notify-broker")),
	}
}

// Ensure Broker implements the interface
var _ Notifier = (*Broker)(nil)

// Publish delivers a change signal to all subscriptions watching the table
func (b *Broker) Publish(_ context.Context, table Table) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if _, ok := sub.tables[table]; !ok {
			continue
		}
		select {
		case sub.ch <- table:
		default:
			b.logger.Warn("change signal dropped - subscriber buffer full",
				slog.String("table", string(table)))
		}
	}
	return nil
}

// Subscribe registers fn for change signals on the given tables
func (b *Broker) Subscribe(_ context.Context, tables []Table, fn func(Table)) (Subscription, error) {
	sub := &brokerSubscription{
		broker:  b,
		tables:  make(map[Table]struct{}, len(tables)),
		ch:      make(chan Table, signalBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go sub.run(fn)
	return sub, nil
}

type brokerSubscription struct {
	broker  *Broker
	tables  map[Table]struct{}
	ch      chan Table
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func (s *brokerSubscription) run(fn func(Table)) {
	defer close(s.stopped)
	for {
		select {
		case table := <-s.ch:
			fn(table)
		case <-s.done:
			return
		}
	}
}

// Unsubscribe removes the subscription and waits for the delivery
// goroutine to exit, so fn is not invoked after it returns. It must not
// be called from inside fn, which would deadlock.
func (s *brokerSubscription) Unsubscribe() error {
	s.once.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs, s)
		s.broker.mu.Unlock()
		close(s.done)
	})
	<-s.stopped
	return nil
}
