package bunrepo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/uptrace/bun"
)

// EventRecord maps the host event table.
type EventRecord struct {
	bun.BaseModel `bun:"table:civicrm_event,alias:e"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Title     string    `bun:"title"`
	Summary   string    `bun:"summary"`
	Location  string    `bun:"location"`
	Timezone  string    `bun:"event_tz"`
	StartDate time.Time `bun:"start_date,nullzero"`
	EndDate   time.Time `bun:"end_date,nullzero"`
	IsActive  bool      `bun:"is_active"`
}

func (r EventRecord) toEvent() eventstore.Event {
	return eventstore.Event{
		ID:       strconv.FormatInt(r.ID, 10),
		Title:    r.Title,
		Summary:  r.Summary,
		Location: r.Location,
		Timezone: r.Timezone,
		Start:    r.StartDate,
		End:      r.EndDate,
	}
}

// EventRepository reads active events through bun.
type EventRepository struct {
	db *bun.DB
}

var _ eventstore.Source = (*EventRepository)(nil)

func NewEventRepository(db *bun.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateSchema creates the event table when missing.
func (r *EventRepository) CreateSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().Model((*EventRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Create inserts a record and fills its id.
func (r *EventRepository) Create(ctx context.Context, record *EventRecord) error {
	_, err := r.db.NewInsert().Model(record).Exec(ctx)
	return err
}

// Event implements eventstore.Source. Non-numeric ids and inactive events
// report eventstore.ErrNotFound.
func (r *EventRepository) Event(ctx context.Context, id string) (eventstore.Event, error) {
	numericID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return eventstore.Event{}, eventstore.ErrNotFound
	}
	record := new(EventRecord)
	err = r.db.NewSelect().
		Model(record).
		Where("e.id = ?", numericID).
		Where("e.is_active = ?", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return eventstore.Event{}, mapError(err)
	}
	return record.toEvent(), nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return eventstore.ErrNotFound
	}
	return err
}
