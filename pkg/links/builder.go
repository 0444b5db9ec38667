package links

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
)

var (
	// ErrNativeBuilderRequired indicates the builder has no NativeURLBuilder.
	ErrNativeBuilderRequired = errors.New("links: native url builder is required")
	// ErrEmptyNativeURL is returned when the native builder yields no URL.
	ErrEmptyNativeURL = errors.New("links: native url builder returned an empty url")
)

// Builder assembles the LinkSet for an event.
type Builder struct {
	native       NativeURLBuilder
	external     ExternalURLBuilder
	localizer    Localizer
	logger       logger.Logger
	icalIcon     string
	externalIcon string
}

// Option configures the builder.
type Option func(*Builder)

// WithExternal sets the external provider URL builder.
func WithExternal(external ExternalURLBuilder) Option {
	return func(b *Builder) {
		if external != nil {
			b.external = external
		}
	}
}

// WithLocalizer sets the label localizer.
func WithLocalizer(localizer Localizer) Option {
	return func(b *Builder) {
		if localizer != nil {
			b.localizer = localizer
		}
	}
}

// WithLogger sets the logger used for degraded external lookups.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithIcons overrides the icon identifiers. Empty values keep the defaults.
func WithIcons(ical, external string) Option {
	return func(b *Builder) {
		if ical = strings.TrimSpace(ical); ical != "" {
			b.icalIcon = ical
		}
		if external = strings.TrimSpace(external); external != "" {
			b.externalIcon = external
		}
	}
}

// NewBuilder creates a Builder around the host's native URL builder.
func NewBuilder(native NativeURLBuilder, opts ...Option) (*Builder, error) {
	if native == nil {
		return nil, ErrNativeBuilderRequired
	}
	b := &Builder{
		native:   native,
		external: &NopExternal{},
		localizer: StaticLocalizer{
			MessageICalTitle:     "Add to desktop calendar",
			MessageExternalTitle: "Add to Google calendar",
		},
		logger:       &logger.Nop{},
		icalIcon:     DefaultICalIcon,
		externalIcon: DefaultExternalIcon,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Build returns the links for eventID, native link first. The external link
// is omitted when its builder reports it unavailable or fails.
func (b *Builder) Build(ctx context.Context, eventID string) (LinkSet, error) {
	if b == nil || b.native == nil {
		return LinkSet{}, ErrNativeBuilderRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return LinkSet{}, err
	}

	icsURL, err := b.native.BuildICSURL(ctx, eventID)
	if err != nil {
		return LinkSet{}, fmt.Errorf("links: build ics url for event %s: %w", eventID, err)
	}
	if strings.TrimSpace(icsURL) == "" {
		return LinkSet{}, ErrEmptyNativeURL
	}

	var set LinkSet
	set.add(Link{
		Key:   KeyICal,
		Title: b.localizer.Translate(ctx, MessageICalTitle),
		Icon:  b.icalIcon,
		URL:   icsURL,
	})

	if externalURL := b.externalURL(ctx, eventID); externalURL != "" {
		set.add(Link{
			Key:   KeyExternal,
			Title: b.localizer.Translate(ctx, MessageExternalTitle),
			Icon:  b.externalIcon,
			URL:   externalURL,
		})
	}
	return set, nil
}

func (b *Builder) externalURL(ctx context.Context, eventID string) string {
	if b.external == nil {
		return ""
	}
	url, err := b.external.BuildExternalURL(ctx, eventID)
	if err != nil {
		if !errors.Is(err, ErrLinkUnavailable) {
			b.logger.Warn("external calendar link skipped",
				logger.F("event_id", eventID),
				logger.F("error", err),
			)
		}
		return ""
	}
	return strings.TrimSpace(url)
}
