package notify

import "context"

// Table names a collection whose rows changed. Change signals carry no
// payload diff; subscribers are expected to re-fetch whatever they need.
type Table string

const (
	TablePlayers      Table = "players"
	TableTimeslots    Table = "timeslots"
	TableAvailability Table = "availability"
	TableMatches      Table = "matches"
)

// AllTables lists every table carried on the change feed
var AllTables = []Table{TablePlayers, TableTimeslots, TableAvailability, TableMatches}

// Publisher emits a payload-less change signal for a table
type Publisher interface {
	Publish(ctx context.Context, table Table) error
}

// Subscriber delivers change signals for a set of tables.
// fn is invoked off the caller's goroutine, once per delivered signal.
type Subscriber interface {
	Subscribe(ctx context.Context, tables []Table, fn func(Table)) (Subscription, error)
}

// Subscription is a handle to an active subscription
type Subscription interface {
	Unsubscribe() error
}

// Notifier combines both ends of the change feed
type Notifier interface {
	Publisher
	Subscriber
}
