package civicrm

import (
	"context"
	"errors"
	"testing"
)

func TestBuildICSURL(t *testing.T) {
	cases := []struct {
		name    string
		builder NativeURLBuilder
		want    string
	}{
		{
			name:    "relative with reset",
			builder: NewNativeURLBuilder("", "", true),
			want:    "/civicrm/event/ical?id=12&reset=1",
		},
		{
			name:    "absolute base trailing slash",
			builder: NewNativeURLBuilder("https://crm.example.org/", "/civicrm/event/ical", true),
			want:    "https://crm.example.org/civicrm/event/ical?id=12&reset=1",
		},
		{
			name:    "without reset",
			builder: NewNativeURLBuilder("https://crm.example.org", "events/ics", false),
			want:    "https://crm.example.org/events/ics?id=12",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.builder.BuildICSURL(context.Background(), "12")
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildICSURLEscapesID(t *testing.T) {
	got, err := NewNativeURLBuilder("", "", false).BuildICSURL(context.Background(), "1&x=2")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got != "/civicrm/event/ical?id=1%26x%3D2" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestBuildICSURLRequiresID(t *testing.T) {
	if _, err := (NativeURLBuilder{}).BuildICSURL(context.Background(), " "); !errors.Is(err, ErrEventIDRequired) {
		t.Fatalf("expected ErrEventIDRequired, got %v", err)
	}
}
