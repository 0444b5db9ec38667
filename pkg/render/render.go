// Package render turns a LinkSet into the HTML placed inside a page
// placeholder or an email body.
package render

import (
	"context"
	"errors"
	"strings"

	internaltemplates "github.com/goliatone/go-addtocal/internal/templates"
	"github.com/goliatone/go-addtocal/pkg/links"
)

// Layout selects how links are presented.
type Layout string

const (
	// LayoutPage renders icon-only anchors for the event page section.
	LayoutPage Layout = "page"
	// LayoutEmail renders labeled anchors, since mail clients do not load icon fonts.
	LayoutEmail Layout = "email"
)

// DefaultSeparator joins email anchors.
const DefaultSeparator = " | "

// Values are escaped in Go and marked safe, so the output is the same
// whether or not the engine autoescapes.
const pageLayout = `{% for link in links %}<a href="{{ link.href|safe }}" title="{{ link.title|safe }}"{% if is_absolute(link.url) %} target="_blank" rel="noopener noreferrer"{% endif %}><i class="crm-i {{ link.icon|safe }}" aria-hidden="true"></i></a>{% endfor %}`

const emailLayout = `{% for link in links %}{% if not forloop.First %}{{ separator|safe }}{% endif %}<a href="{{ link.href|safe }}" title="{{ link.title|safe }}"{% if is_absolute(link.url) %} target="_blank" rel="noopener noreferrer"{% endif %}>{{ link.title|safe }}</a>{% endfor %}`

// ErrEngineRequired is returned when the renderer has no template engine.
var ErrEngineRequired = errors.New("render: template engine is required")

// Renderer produces markup for a LinkSet.
type Renderer interface {
	Render(ctx context.Context, layout Layout, set links.LinkSet) (string, error)
}

// HTMLRenderer renders links through the go-template engine.
type HTMLRenderer struct {
	engine    *internaltemplates.Engine
	separator string
}

var _ Renderer = (*HTMLRenderer)(nil)

// Option configures the HTML renderer.
type Option func(*HTMLRenderer)

// WithSeparator overrides the markup placed between email anchors.
func WithSeparator(separator string) Option {
	return func(r *HTMLRenderer) {
		r.separator = separator
	}
}

// WithLayoutOverride replaces the template used for layout.
func WithLayoutOverride(layout Layout, body string) Option {
	return func(r *HTMLRenderer) {
		if strings.TrimSpace(body) != "" {
			r.engine.RegisterLayout(string(layout), body)
		}
	}
}

// NewHTMLRenderer registers the default layouts on a fresh engine.
func NewHTMLRenderer(opts ...Option) (*HTMLRenderer, error) {
	engine, err := internaltemplates.NewEngine(
		internaltemplates.WithLayout(string(LayoutPage), pageLayout),
		internaltemplates.WithLayout(string(LayoutEmail), emailLayout),
	)
	if err != nil {
		return nil, err
	}
	r := &HTMLRenderer{
		engine:    engine,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Render emits one anchor per link in set order with no wrapper element.
// An empty set renders as an empty string.
func (r *HTMLRenderer) Render(ctx context.Context, layout Layout, set links.LinkSet) (string, error) {
	if r == nil || r.engine == nil {
		return "", ErrEngineRequired
	}
	if set.Len() == 0 {
		return "", nil
	}
	if layout == "" {
		layout = LayoutPage
	}
	out, err := r.engine.Render(ctx, string(layout), map[string]any{
		"links":     linkData(set),
		"separator": r.separator,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func linkData(set links.LinkSet) []map[string]any {
	items := set.Links()
	out := make([]map[string]any, 0, len(items))
	for _, link := range items {
		out = append(out, map[string]any{
			"key":   string(link.Key),
			"url":   link.URL,
			"href":  internaltemplates.EscapeAttr(link.URL),
			"title": internaltemplates.EscapeAttr(link.Title),
			"icon":  internaltemplates.EscapeAttr(link.Icon),
		})
	}
	return out
}
