package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/goliatone/go-addtocal/pkg/links"
)

const (
	// DefaultEndpoint is the Google Calendar event template endpoint.
	DefaultEndpoint = "https://calendar.google.com/calendar/render"
	// DateLayout is the UTC timestamp layout Google expects in "dates".
	DateLayout = "20060102T150405Z"
)

// ErrSourceRequired indicates the builder has no event source.
var ErrSourceRequired = errors.New("gcal: event source is required")

// Builder implements links.ExternalURLBuilder for Google Calendar.
type Builder struct {
	source          eventstore.Source
	endpoint        string
	defaultDuration time.Duration
}

var _ links.ExternalURLBuilder = (*Builder)(nil)

// Option configures the builder.
type Option func(*Builder)

// WithEndpoint overrides the Google Calendar endpoint.
func WithEndpoint(endpoint string) Option {
	return func(b *Builder) {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
			b.endpoint = endpoint
		}
	}
}

// WithDefaultDuration sets the length used when an event has no usable end.
func WithDefaultDuration(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.defaultDuration = d
		}
	}
}

// NewBuilder creates a Google Calendar link builder over source.
func NewBuilder(source eventstore.Source, opts ...Option) *Builder {
	b := &Builder{
		source:          source,
		endpoint:        DefaultEndpoint,
		defaultDuration: time.Hour,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BuildExternalURL returns links.ErrLinkUnavailable for unknown events and
// for events without a title or start time.
func (b *Builder) BuildExternalURL(ctx context.Context, eventID string) (string, error) {
	if b == nil || b.source == nil {
		return "", ErrSourceRequired
	}
	evt, err := b.source.Event(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			return "", links.ErrLinkUnavailable
		}
		return "", fmt.Errorf("gcal: load event %s: %w", eventID, err)
	}
	if !evt.Schedulable() {
		return "", links.ErrLinkUnavailable
	}
	return b.URLFor(evt), nil
}

// URLFor renders the template URL for evt without checking Schedulable.
func (b *Builder) URLFor(evt eventstore.Event) string {
	start := evt.Start.UTC()
	end := evt.End.UTC()
	if evt.End.IsZero() || !end.After(start) {
		end = start.Add(b.defaultDuration)
	}

	query := url.Values{}
	query.Set("action", "TEMPLATE")
	query.Set("text", strings.TrimSpace(evt.Title))
	query.Set("dates", start.Format(DateLayout)+"/"+end.Format(DateLayout))
	if details := strings.TrimSpace(evt.Summary); details != "" {
		query.Set("details", details)
	}
	if location := strings.TrimSpace(evt.Location); location != "" {
		query.Set("location", location)
	}
	if tz := strings.TrimSpace(evt.Timezone); tz != "" {
		query.Set("ctz", tz)
	}
	return b.endpoint + "?" + query.Encode()
}
