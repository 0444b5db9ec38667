package civicrm

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/goliatone/go-addtocal/pkg/links"
)

// DefaultICSPath is the CiviCRM iCalendar export route.
const DefaultICSPath = "civicrm/event/ical"

// ErrEventIDRequired is returned when no event id is given.
var ErrEventIDRequired = errors.New("civicrm: event id is required")

// NativeURLBuilder builds links to the host's own iCalendar export.
type NativeURLBuilder struct {
	BaseURL string
	Path    string
	Reset   bool
}

var _ links.NativeURLBuilder = NativeURLBuilder{}

// NewNativeURLBuilder returns a builder for baseURL. An empty baseURL yields
// root-relative links.
func NewNativeURLBuilder(baseURL, path string, reset bool) NativeURLBuilder {
	if strings.TrimSpace(path) == "" {
		path = DefaultICSPath
	}
	return NativeURLBuilder{BaseURL: baseURL, Path: path, Reset: reset}
}

// BuildICSURL returns {base}/{path}?id={eventID}[&reset=1].
func (b NativeURLBuilder) BuildICSURL(ctx context.Context, eventID string) (string, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return "", ErrEventIDRequired
	}
	path := b.Path
	if strings.TrimSpace(path) == "" {
		path = DefaultICSPath
	}

	query := url.Values{}
	query.Set("id", eventID)
	if b.Reset {
		query.Set("reset", "1")
	}
	return strings.TrimRight(strings.TrimSpace(b.BaseURL), "/") + "/" + strings.TrimLeft(path, "/") + "?" + query.Encode(), nil
}
