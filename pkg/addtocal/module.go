package addtocal

import (
	"reflect"
	"strings"

	i18n "github.com/goliatone/go-i18n"

	"github.com/goliatone/go-addtocal/adapters/civicrm"
	"github.com/goliatone/go-addtocal/adapters/domsplice"
	"github.com/goliatone/go-addtocal/adapters/gcal"
	"github.com/goliatone/go-addtocal/pkg/config"
	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
	"github.com/goliatone/go-addtocal/pkg/links"
	"github.com/goliatone/go-addtocal/pkg/localization"
	"github.com/goliatone/go-addtocal/pkg/render"
	"github.com/goliatone/go-addtocal/pkg/splice"
)

// ModuleOptions configure the module facade. A zero Config means
// config.Defaults(); nil collaborators fall back to the CiviCRM conventions.
type ModuleOptions struct {
	Config     config.Config
	Logger     logger.Logger
	Translator i18n.Translator
	// Events feeds the Google Calendar builder. Without it, and without an
	// External override, only the native link is offered.
	Events   eventstore.Source
	Native   links.NativeURLBuilder
	External links.ExternalURLBuilder
	Splicer  splice.Splicer
	Pages    PageContextResolver
	Emails   EmailContextResolver
}

// Module bundles the configured collaborators and exposes the hooks.
type Module struct {
	config    config.Config
	localizer *localization.Localizer
	builder   *links.Builder
	renderer  *render.HTMLRenderer
	hooks     *Hooks
}

// NewModule assembles localizer, link builder, renderer, splicer and hooks.
func NewModule(opts ModuleOptions) (*Module, error) {
	cfg := opts.Config
	if reflect.ValueOf(cfg).IsZero() {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.OrNop(opts.Logger)

	translator := opts.Translator
	if translator == nil {
		var err error
		translator, err = localization.NewTranslator(cfg.Extension.Domain, cfg.Localization.DefaultLocale)
		if err != nil {
			return nil, err
		}
	}
	localizer := localization.NewLocalizer(translator, cfg.Extension.Domain, cfg.Localization.DefaultLocale, log)

	native := opts.Native
	if native == nil {
		native = civicrm.NewNativeURLBuilder(cfg.Links.BaseURL, cfg.Links.ICSPath, cfg.ResetEnabled())
	}
	builderOpts := []links.Option{
		links.WithLocalizer(localizer),
		links.WithLogger(log),
		links.WithIcons(cfg.Links.ICalIcon, cfg.Links.ExternalIcon),
	}
	if external := externalBuilder(cfg, opts); external != nil {
		builderOpts = append(builderOpts, links.WithExternal(external))
	}
	builder, err := links.NewBuilder(native, builderOpts...)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewHTMLRenderer(render.WithSeparator(cfg.Email.Separator))
	if err != nil {
		return nil, err
	}

	splicer := opts.Splicer
	if splicer == nil {
		if splicer, err = newSplicer(cfg.Placeholder); err != nil {
			return nil, err
		}
	}

	pages := opts.Pages
	if pages == nil {
		pages = civicrm.NewPageResolver(cfg.Pages)
	}
	emails := opts.Emails
	if emails == nil {
		emails = civicrm.NewEmailResolver(cfg.Email.Group, cfg.Email.Variants...)
	}

	hooks, err := NewHooks(Dependencies{
		Links:     builder,
		Renderer:  renderer,
		Splicer:   splicer,
		Pages:     pages,
		Emails:    emails,
		Localizer: localizer,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		config:    cfg,
		localizer: localizer,
		builder:   builder,
		renderer:  renderer,
		hooks:     hooks,
	}, nil
}

func newSplicer(cfg config.PlaceholderConfig) (splice.Splicer, error) {
	if strings.TrimSpace(cfg.Selector) != "" {
		return domsplice.New(cfg.Selector, domsplice.WithHint(hintFromOpening(cfg.Opening)))
	}
	return splice.NewPatternSplicer(splice.Markers{
		Opening: cfg.Opening,
		Closing: cfg.Closing,
	})
}

// hintFromOpening strips the attribute tail from an opening marker such as
// `iCal_links-section">` so the hint also matches multi-class attributes.
func hintFromOpening(opening string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(opening), `"'>`))
}

func externalBuilder(cfg config.Config, opts ModuleOptions) links.ExternalURLBuilder {
	if !cfg.ExternalEnabled() {
		return nil
	}
	if opts.External != nil {
		return opts.External
	}
	if opts.Events != nil {
		return gcal.NewBuilder(opts.Events, gcal.WithDefaultDuration(cfg.Events.DefaultDuration))
	}
	return nil
}

// Hooks returns the host entry points.
func (m *Module) Hooks() *Hooks {
	if m == nil {
		return nil
	}
	return m.hooks
}

// Links returns the link builder.
func (m *Module) Links() *links.Builder {
	if m == nil {
		return nil
	}
	return m.builder
}

// Renderer returns the HTML renderer.
func (m *Module) Renderer() *render.HTMLRenderer {
	if m == nil {
		return nil
	}
	return m.renderer
}

// Localizer returns the label localizer.
func (m *Module) Localizer() *localization.Localizer {
	if m == nil {
		return nil
	}
	return m.localizer
}

// Config returns the configuration the module was built with.
func (m *Module) Config() config.Config {
	if m == nil {
		return config.Config{}
	}
	return m.config
}
