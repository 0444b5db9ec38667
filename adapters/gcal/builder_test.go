package gcal

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/goliatone/go-addtocal/internal/storage/memory"
	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/goliatone/go-addtocal/pkg/links"
)

func parseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestBuildExternalURLForCompleteEvent(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	start := time.Date(2026, 6, 20, 19, 0, 0, 0, paris)
	source := memory.NewEventRepository(eventstore.Event{
		ID:       "5",
		Title:    "Summer concert",
		Summary:  "Doors open at 18:30",
		Location: "Parc de la Villette",
		Timezone: "Europe/Paris",
		Start:    start,
		End:      start.Add(3 * time.Hour),
	})

	raw, err := NewBuilder(source).BuildExternalURL(context.Background(), "5")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	u := parseURL(t, raw)
	if u.Scheme != "https" || u.Host != "calendar.google.com" || u.Path != "/calendar/render" {
		t.Fatalf("unexpected endpoint %q", raw)
	}
	q := u.Query()
	if q.Get("action") != "TEMPLATE" || q.Get("text") != "Summer concert" {
		t.Fatalf("unexpected query %v", q)
	}
	if got := q.Get("dates"); got != "20260620T170000Z/20260620T200000Z" {
		t.Fatalf("unexpected dates %q", got)
	}
	if q.Get("details") != "Doors open at 18:30" || q.Get("location") != "Parc de la Villette" || q.Get("ctz") != "Europe/Paris" {
		t.Fatalf("unexpected optional fields %v", q)
	}
}

func TestBuildExternalURLDefaultsEnd(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	source := memory.NewEventRepository(
		eventstore.Event{ID: "1", Title: "No end", Start: start},
		eventstore.Event{ID: "2", Title: "Bad end", Start: start, End: start.Add(-time.Hour)},
	)
	builder := NewBuilder(source, WithDefaultDuration(90*time.Minute))

	for _, id := range []string{"1", "2"} {
		raw, err := builder.BuildExternalURL(context.Background(), id)
		if err != nil {
			t.Fatalf("build %s: %v", id, err)
		}
		q := parseURL(t, raw).Query()
		if got := q.Get("dates"); got != "20260102T100000Z/20260102T113000Z" {
			t.Fatalf("event %s: unexpected dates %q", id, got)
		}
		if q.Has("details") || q.Has("location") || q.Has("ctz") {
			t.Fatalf("event %s: expected optional fields omitted, got %v", id, q)
		}
	}
}

func TestBuildExternalURLUnavailable(t *testing.T) {
	source := memory.NewEventRepository(
		eventstore.Event{ID: "1", Title: "No start"},
		eventstore.Event{ID: "2", Start: time.Now()},
	)
	builder := NewBuilder(source)
	for _, id := range []string{"1", "2", "missing"} {
		raw, err := builder.BuildExternalURL(context.Background(), id)
		if !errors.Is(err, links.ErrLinkUnavailable) {
			t.Fatalf("event %s: expected ErrLinkUnavailable, got %v", id, err)
		}
		if raw != "" {
			t.Fatalf("event %s: expected empty url, got %q", id, raw)
		}
	}
}

type failingSource struct{}

func (failingSource) Event(ctx context.Context, id string) (eventstore.Event, error) {
	return eventstore.Event{}, errors.New("database offline")
}

func TestBuildExternalURLSourceFailure(t *testing.T) {
	_, err := NewBuilder(failingSource{}).BuildExternalURL(context.Background(), "1")
	if err == nil || errors.Is(err, links.ErrLinkUnavailable) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if _, err := NewBuilder(nil).BuildExternalURL(context.Background(), "1"); !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}

func TestWithEndpoint(t *testing.T) {
	source := memory.NewEventRepository(eventstore.Event{ID: "1", Title: "T", Start: time.Unix(0, 0)})
	raw, err := NewBuilder(source, WithEndpoint("https://calendar.example.test/add")).BuildExternalURL(context.Background(), "1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if u := parseURL(t, raw); u.Host != "calendar.example.test" || u.Path != "/add" {
		t.Fatalf("unexpected endpoint %q", raw)
	}
}
