package addtocal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaytaylor/html2text"

	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
	"github.com/goliatone/go-addtocal/pkg/links"
	"github.com/goliatone/go-addtocal/pkg/localization"
	"github.com/goliatone/go-addtocal/pkg/render"
	"github.com/goliatone/go-addtocal/pkg/splice"
)

var (
	// ErrNotApplicable reports an unrecognized page kind or email, or no event id.
	ErrNotApplicable = errors.New("addtocal: not applicable")
	// ErrDependencyMissing indicates Hooks was built without a required collaborator.
	ErrDependencyMissing = errors.New("addtocal: missing dependency")
)

// LinkBuilder produces the links for an event.
type LinkBuilder interface {
	Build(ctx context.Context, eventID string) (links.LinkSet, error)
}

// PageContextResolver selects eligible page kinds and reads their event id.
type PageContextResolver interface {
	Applies(pageKind string) bool
	ResolvePage(ctx context.Context, pageKind string, pageContext map[string]any) (string, bool)
}

// EmailContextResolver returns the event id of an event workflow email.
type EmailContextResolver interface {
	ResolveEmail(ctx context.Context, group, variant string, payload map[string]any) (string, bool)
}

// EmailParams is the outbound email as handed over by the host.
type EmailParams struct {
	GroupName string
	ValueName string
	TplParams map[string]any
	Locale    string
	Subject   string
	HTML      string
	Text      string
}

// Dependencies wires the collaborators used by Hooks.
type Dependencies struct {
	Links    LinkBuilder
	Renderer render.Renderer
	Splicer  splice.Splicer
	Pages    PageContextResolver
	Emails   EmailContextResolver
	// Localizer resolves the email anchor phrase; optional.
	Localizer links.Localizer
	Logger    logger.Logger
}

// Hooks implements the page and email content alteration entry points.
type Hooks struct {
	links     LinkBuilder
	renderer  render.Renderer
	splicer   splice.Splicer
	pages     PageContextResolver
	emails    EmailContextResolver
	localizer links.Localizer
	logger    logger.Logger
}

// NewHooks validates deps. Pages and Emails may be nil to disable a surface.
func NewHooks(deps Dependencies) (*Hooks, error) {
	if deps.Links == nil {
		return nil, fmt.Errorf("%w: link builder", ErrDependencyMissing)
	}
	if deps.Renderer == nil {
		return nil, fmt.Errorf("%w: renderer", ErrDependencyMissing)
	}
	if deps.Splicer == nil {
		return nil, fmt.Errorf("%w: splicer", ErrDependencyMissing)
	}
	if deps.Localizer == nil {
		deps.Localizer = links.StaticLocalizer{
			localization.MessageEmailAnchor: localization.DefaultMessages[localization.MessageEmailAnchor],
		}
	}
	return &Hooks{
		links:     deps.Links,
		renderer:  deps.Renderer,
		splicer:   deps.Splicer,
		pages:     deps.Pages,
		emails:    deps.Emails,
		localizer: deps.Localizer,
		logger:    logger.OrNop(deps.Logger),
	}, nil
}

// OnRenderPage returns content with the calendar section filled in, or the
// original content when the page does not apply or anything fails.
func (h *Hooks) OnRenderPage(ctx context.Context, content, pageKind string, pageContext map[string]any) string {
	altered, err := h.AlterPage(ctx, content, pageKind, pageContext)
	if err != nil {
		h.report(err, logger.F("page_kind", pageKind))
		return content
	}
	return altered
}

// AlterPage is OnRenderPage with the failure reported to the caller.
func (h *Hooks) AlterPage(ctx context.Context, content, pageKind string, pageContext map[string]any) (string, error) {
	if h.pages == nil || !h.pages.Applies(pageKind) {
		return content, ErrNotApplicable
	}
	if !h.splicer.Contains(content) {
		return content, splice.ErrPlaceholderAbsent
	}
	eventID, ok := h.pages.ResolvePage(ctx, pageKind, pageContext)
	if !ok {
		return content, ErrNotApplicable
	}
	return h.spliceLinks(ctx, content, eventID)
}

// MaybeAlterContent applies the page flow for a known event id.
func (h *Hooks) MaybeAlterContent(ctx context.Context, document, pageKind, eventID string) string {
	if h.pages == nil || !h.pages.Applies(pageKind) || strings.TrimSpace(eventID) == "" {
		return document
	}
	if !h.splicer.Contains(document) {
		return document
	}
	altered, err := h.spliceLinks(ctx, document, eventID)
	if err != nil {
		h.report(err, logger.F("page_kind", pageKind), logger.F("event_id", eventID))
		return document
	}
	return altered
}

func (h *Hooks) spliceLinks(ctx context.Context, document, eventID string) (string, error) {
	set, err := h.links.Build(ctx, eventID)
	if err != nil {
		return document, err
	}
	html, err := h.renderer.Render(ctx, render.LayoutPage, set)
	if err != nil {
		return document, err
	}
	altered, err := h.splicer.Splice(document, html)
	if err != nil {
		return document, err
	}
	return altered, nil
}

// OnBuildEmail replaces the default calendar download link in an event
// workflow email with the rendered links. When the localized phrase is the
// text of an anchor the whole anchor is replaced. Other emails pass through.
func (h *Hooks) OnBuildEmail(ctx context.Context, params EmailParams) EmailParams {
	altered, err := h.AlterEmail(ctx, params)
	if err != nil {
		h.report(err,
			logger.F("group", params.GroupName),
			logger.F("variant", params.ValueName),
		)
		return params
	}
	return altered
}

// AlterEmail is OnBuildEmail with the failure reported to the caller.
func (h *Hooks) AlterEmail(ctx context.Context, params EmailParams) (EmailParams, error) {
	if h.emails == nil {
		return params, ErrNotApplicable
	}
	if params.Locale != "" {
		ctx = localization.WithLocale(ctx, params.Locale)
	}
	eventID, ok := h.emails.ResolveEmail(ctx, params.GroupName, params.ValueName, params.TplParams)
	if !ok {
		return params, ErrNotApplicable
	}

	anchor := h.localizer.Translate(ctx, localization.MessageEmailAnchor)
	inHTML := anchor != "" && strings.Contains(params.HTML, anchor)
	inText := anchor != "" && strings.Contains(params.Text, anchor)
	if !inHTML && !inText {
		return params, splice.ErrPlaceholderAbsent
	}

	set, err := h.links.Build(ctx, eventID)
	if err != nil {
		return params, err
	}
	html, err := h.renderer.Render(ctx, render.LayoutEmail, set)
	if err != nil {
		return params, err
	}

	out := params
	if inHTML {
		if out.HTML, err = splice.ReplaceLink(params.HTML, anchor, html); err != nil {
			return params, err
		}
	}
	if inText {
		text, err := html2text.FromString(html, html2text.Options{})
		if err != nil {
			return params, fmt.Errorf("addtocal: text rendition: %w", err)
		}
		if out.Text, err = splice.ReplaceFirst(params.Text, anchor, strings.TrimSpace(text)); err != nil {
			return params, err
		}
	}
	return out, nil
}

func (h *Hooks) report(err error, fields ...logger.Field) {
	fields = append(fields, logger.F("error", err))
	switch {
	case errors.Is(err, ErrNotApplicable), errors.Is(err, splice.ErrPlaceholderAbsent):
		h.logger.Debug("calendar links skipped", fields...)
	case errors.Is(err, splice.ErrMalformedDocument):
		h.logger.Warn("calendar links placeholder is malformed", fields...)
	default:
		h.logger.Error("calendar links failed", fields...)
	}
}
