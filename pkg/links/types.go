package links

import (
	"context"
	"errors"
)

// Key identifies a link within a LinkSet.
type Key string

const (
	// KeyICal is the host's own iCalendar download link.
	KeyICal Key = "ical"
	// KeyExternal is the third-party calendar provider link.
	KeyExternal Key = "external"
)

// Message keys resolved through the Localizer.
const (
	MessageICalTitle     = "link.ical.title"
	MessageExternalTitle = "link.external.title"
)

// Default icon identifiers.
const (
	DefaultICalIcon     = "fa-calendar"
	DefaultExternalIcon = "fa-google"
)

// ErrLinkUnavailable is returned by an ExternalURLBuilder that cannot build a
// URL for the event. The builder treats it the same as an empty URL.
var ErrLinkUnavailable = errors.New("links: link unavailable")

// Link is a single labeled calendar link.
type Link struct {
	Key   Key
	Title string
	Icon  string
	URL   string
}

// Localizer resolves message keys to locale-appropriate labels.
type Localizer interface {
	Translate(ctx context.Context, key string) string
}

// NativeURLBuilder returns the host's iCalendar export URL for an event.
type NativeURLBuilder interface {
	BuildICSURL(ctx context.Context, eventID string) (string, error)
}

// ExternalURLBuilder returns a third-party "add event" URL. An empty URL or
// ErrLinkUnavailable means the event cannot be offered externally.
type ExternalURLBuilder interface {
	BuildExternalURL(ctx context.Context, eventID string) (string, error)
}

// NativeURLBuilderFunc adapts a function to NativeURLBuilder.
type NativeURLBuilderFunc func(ctx context.Context, eventID string) (string, error)

// BuildICSURL calls fn.
func (fn NativeURLBuilderFunc) BuildICSURL(ctx context.Context, eventID string) (string, error) {
	return fn(ctx, eventID)
}

// ExternalURLBuilderFunc adapts a function to ExternalURLBuilder.
type ExternalURLBuilderFunc func(ctx context.Context, eventID string) (string, error)

// BuildExternalURL calls fn.
func (fn ExternalURLBuilderFunc) BuildExternalURL(ctx context.Context, eventID string) (string, error) {
	return fn(ctx, eventID)
}

// StaticLocalizer returns labels from a fixed map, falling back to the key.
type StaticLocalizer map[string]string

// Translate implements Localizer.
func (s StaticLocalizer) Translate(_ context.Context, key string) string {
	if label, ok := s[key]; ok {
		return label
	}
	return key
}
