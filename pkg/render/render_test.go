package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-addtocal/pkg/links"
)

func twoLinks() links.LinkSet {
	return links.NewLinkSet(
		links.Link{Key: links.KeyICal, Title: "Add to desktop calendar", Icon: "fa-calendar", URL: "/civicrm/event/ical?id=3&reset=1"},
		links.Link{Key: links.KeyExternal, Title: "Add to Google calendar", Icon: "fa-google", URL: "https://calendar.google.com/calendar/render?action=TEMPLATE&text=Gala"},
	)
}

func newRenderer(t *testing.T, opts ...Option) *HTMLRenderer {
	t.Helper()
	r, err := NewHTMLRenderer(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderPageEmitsAnchorsInOrder(t *testing.T) {
	out, err := newRenderer(t).Render(context.Background(), LayoutPage, twoLinks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(out, "<a ") != 2 {
		t.Fatalf("expected 2 anchors, got %q", out)
	}
	native := strings.Index(out, `href="/civicrm/event/ical?id=3&amp;reset=1"`)
	external := strings.Index(out, `href="https://calendar.google.com/calendar/render?action=TEMPLATE&amp;text=Gala"`)
	if native < 0 || external < 0 || native > external {
		t.Fatalf("expected native anchor before external anchor: %q", out)
	}
	if !strings.Contains(out, `<i class="crm-i fa-calendar" aria-hidden="true"></i>`) {
		t.Fatalf("missing calendar icon: %q", out)
	}
	if strings.HasPrefix(out, "<div") {
		t.Fatalf("renderer must not add a wrapper: %q", out)
	}
}

func TestRenderMarksOnlyAbsoluteLinksAsNewContext(t *testing.T) {
	out, err := newRenderer(t).Render(context.Background(), LayoutPage, twoLinks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(out, `target="_blank"`) != 1 {
		t.Fatalf("expected exactly one new-context anchor: %q", out)
	}
	nativeAnchor := out[:strings.Index(out, "</a>")]
	if strings.Contains(nativeAnchor, "target=") {
		t.Fatalf("native link should navigate in place: %q", nativeAnchor)
	}
}

func TestRenderEscapesQuotesInTitleAndURL(t *testing.T) {
	set := links.NewLinkSet(links.Link{
		Key:   links.KeyICal,
		Title: `He said "hi"`,
		Icon:  "fa-calendar",
		URL:   `/ical?id=1" onclick="alert(1)`,
	})
	out, err := newRenderer(t).Render(context.Background(), LayoutPage, set)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `title="He said &#34;hi&#34;"`) {
		t.Fatalf("title attribute not escaped: %q", out)
	}
	if !strings.Contains(out, `href="/ical?id=1&#34; onclick=&#34;alert(1)"`) {
		t.Fatalf("href attribute not escaped: %q", out)
	}
	if strings.Contains(out, `onclick="`) {
		t.Fatalf("attribute broke out of href: %q", out)
	}
	// Every attribute quote must be balanced for the tag to stay well formed.
	tag := out[:strings.Index(out, ">")+1]
	if strings.Count(tag, `"`)%2 != 0 {
		t.Fatalf("unbalanced quotes in %q", tag)
	}
}

func TestRenderEmailUsesLabelsAndSeparator(t *testing.T) {
	out, err := newRenderer(t, WithSeparator(" · ")).Render(context.Background(), LayoutEmail, twoLinks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, ">Add to desktop calendar</a> · <a ") {
		t.Fatalf("expected labeled anchors joined by separator: %q", out)
	}
	if strings.Contains(out, "<i ") {
		t.Fatalf("email layout should not use icon fonts: %q", out)
	}
}

func TestRenderEmptySet(t *testing.T) {
	out, err := newRenderer(t).Render(context.Background(), LayoutPage, links.LinkSet{})
	if err != nil || out != "" {
		t.Fatalf("expected empty output, got %q (%v)", out, err)
	}
}

func TestRenderLayoutOverride(t *testing.T) {
	r := newRenderer(t, WithLayoutOverride(LayoutPage, `{% for link in links %}[{{ link.key }}]{% endfor %}`))
	out, err := r.Render(context.Background(), LayoutPage, twoLinks())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "[ical][external]" {
		t.Fatalf("unexpected override output %q", out)
	}
}
