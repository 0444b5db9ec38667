// Package eventstore defines the event lookup consumed by external calendar
// URL builders. Implementations live under internal/storage.
package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no event matches an id.
var ErrNotFound = errors.New("eventstore: event not found")

// Event carries the fields an external calendar provider needs.
type Event struct {
	ID       string
	Title    string
	Summary  string
	Location string
	Timezone string
	Start    time.Time
	End      time.Time
}

// Schedulable reports whether the event has the fields required to be
// offered on an external calendar.
func (e Event) Schedulable() bool {
	return strings.TrimSpace(e.Title) != "" && !e.Start.IsZero()
}

// Source looks events up by id.
type Source interface {
	Event(ctx context.Context, id string) (Event, error)
}
