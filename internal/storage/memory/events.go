package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-addtocal/pkg/eventstore"
)

// EventRepository keeps events in memory, keyed by id.
type EventRepository struct {
	mu      sync.RWMutex
	records map[string]eventstore.Event
}

var _ eventstore.Source = (*EventRepository)(nil)

func NewEventRepository(events ...eventstore.Event) *EventRepository {
	repo := &EventRepository{
		records: make(map[string]eventstore.Event),
	}
	for _, evt := range events {
		repo.Put(evt)
	}
	return repo
}

// Put stores or replaces an event. Events without an id are ignored.
func (r *EventRepository) Put(evt eventstore.Event) {
	id := strings.TrimSpace(evt.ID)
	if id == "" {
		return
	}
	evt.ID = id
	r.mu.Lock()
	r.records[id] = evt
	r.mu.Unlock()
}

// Event implements eventstore.Source.
func (r *EventRepository) Event(ctx context.Context, id string) (eventstore.Event, error) {
	if err := ctx.Err(); err != nil {
		return eventstore.Event{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	evt, ok := r.records[strings.TrimSpace(id)]
	if !ok {
		return eventstore.Event{}, eventstore.ErrNotFound
	}
	return evt, nil
}

// IDs returns the stored ids in sorted order.
func (r *EventRepository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
