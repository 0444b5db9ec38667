package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestEngineRendersRegisteredLayout(t *testing.T) {
	engine, err := NewEngine(WithLayout("greeting", `Hello {{ name }}`))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render(context.Background(), "Greeting", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Hello Ada") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngineHelpersAvailableInLayouts(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.RegisterLayout("check", `{% if is_absolute(url) %}external{% else %}local{% endif %}`)

	out, err := engine.Render(context.Background(), "check", map[string]any{"url": "https://example.com"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "external") {
		t.Fatalf("expected external, got %q", out)
	}

	out, err = engine.Render(context.Background(), "check", map[string]any{"url": "/ical"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "local") {
		t.Fatalf("expected local, got %q", out)
	}
}

func TestEngineRenderErrors(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render(context.Background(), "missing", nil); !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
	if _, err := engine.Render(context.Background(), " ", nil); !errors.Is(err, ErrInvalidRenderRequest) {
		t.Fatalf("expected ErrInvalidRenderRequest, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Render(ctx, "missing", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEngineListsHelpers(t *testing.T) {
	engine, err := NewEngine(WithHelperFuncs(map[string]any{
		"upper": strings.ToUpper,
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	names := engine.Helpers()
	if len(names) != 2 || names[0] != "is_absolute" || names[1] != "upper" {
		t.Fatalf("unexpected helpers %v", names)
	}
}
