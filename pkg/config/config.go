package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// Default page kinds and the page context property carrying the event id.
const (
	PageEventInfo = "CRM/Event/Page/EventInfo.tpl"
	PageThankYou  = "CRM/Event/Form/Registration/ThankYou.tpl"
)

// Config captures module-level configuration knobs. Feature packages (links,
// splice, render, hooks) pull from these nested structs.
type Config struct {
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Extension    ExtensionConfig    `mapstructure:"extension" json:"extension"`
	Links        LinksConfig        `mapstructure:"links" json:"links"`
	Placeholder  PlaceholderConfig  `mapstructure:"placeholder" json:"placeholder"`
	Pages        map[string]string  `mapstructure:"pages" json:"pages"`
	Email        EmailConfig        `mapstructure:"email" json:"email"`
	Events       EventsConfig       `mapstructure:"events" json:"events"`
}

// LocalizationConfig controls the default locale.
type LocalizationConfig struct {
	DefaultLocale string `mapstructure:"default_locale" json:"default_locale"`
}

// ExtensionConfig names the extension; Domain prefixes translation keys.
type ExtensionConfig struct {
	Domain string `mapstructure:"domain" json:"domain"`
}

// LinksConfig drives native URL construction and icons.
type LinksConfig struct {
	BaseURL         string `mapstructure:"base_url" json:"base_url"`
	ICSPath         string `mapstructure:"ics_path" json:"ics_path"`
	Reset           *bool  `mapstructure:"reset" json:"reset,omitempty"`
	ICalIcon        string `mapstructure:"ical_icon" json:"ical_icon"`
	ExternalIcon    string `mapstructure:"external_icon" json:"external_icon"`
	ExternalEnabled *bool  `mapstructure:"external_enabled" json:"external_enabled,omitempty"`
}

// PlaceholderConfig holds the page region markers. A non-empty Selector
// switches page splicing to the DOM based splicer.
type PlaceholderConfig struct {
	Opening  string `mapstructure:"opening" json:"opening"`
	Closing  string `mapstructure:"closing" json:"closing"`
	Selector string `mapstructure:"selector" json:"selector,omitempty"`
}

// EmailConfig scopes the email hook to event workflow messages.
type EmailConfig struct {
	Group     string   `mapstructure:"group" json:"group"`
	Variants  []string `mapstructure:"variants" json:"variants"`
	Separator string   `mapstructure:"separator" json:"separator"`
}

// EventsConfig tunes event data used by external providers.
type EventsConfig struct {
	DefaultDuration time.Duration `mapstructure:"default_duration" json:"default_duration"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Extension:    ExtensionConfig{Domain: "addtocal"},
		Links: LinksConfig{
			ICSPath:         "civicrm/event/ical",
			Reset:           boolPtr(true),
			ICalIcon:        "fa-calendar",
			ExternalIcon:    "fa-google",
			ExternalEnabled: boolPtr(true),
		},
		Placeholder: PlaceholderConfig{
			Opening: `iCal_links-section">`,
			Closing: `</div>`,
		},
		Pages: map[string]string{
			PageEventInfo: "id",
			PageThankYou:  "eventId",
		},
		Email: EmailConfig{
			Group:     "msg_tpl_workflow_event",
			Variants:  []string{"event_online_receipt", "event_offline_receipt"},
			Separator: " | ",
		},
		Events: EventsConfig{DefaultDuration: time.Hour},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	if strings.TrimSpace(c.Links.ICSPath) == "" {
		return errors.New("links.ics_path is required")
	}
	if c.Placeholder.Opening == "" || c.Placeholder.Closing == "" {
		return errors.New("placeholder.opening and placeholder.closing are required")
	}
	if c.Placeholder.Opening == c.Placeholder.Closing {
		return fmt.Errorf("placeholder markers must differ, both are %q", c.Placeholder.Opening)
	}
	for kind, property := range c.Pages {
		if strings.TrimSpace(kind) == "" || strings.TrimSpace(property) == "" {
			return fmt.Errorf("pages entry %q -> %q must name both page kind and property", kind, property)
		}
	}
	if c.Events.DefaultDuration < 0 {
		return fmt.Errorf("events.default_duration must be >= 0")
	}
	return nil
}

// ResetEnabled reports whether the native link carries reset=1.
func (c Config) ResetEnabled() bool {
	return c.Links.Reset == nil || *c.Links.Reset
}

// ExternalEnabled reports whether the external provider link is offered.
func (c Config) ExternalEnabled() bool {
	return c.Links.ExternalEnabled == nil || *c.Links.ExternalEnabled
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers,
// falling back to a JSON round trip when cfgx yields a zero config.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	if c.Extension.Domain == "" {
		c.Extension.Domain = defaults.Extension.Domain
	}
	if c.Links.ICSPath == "" {
		c.Links.ICSPath = defaults.Links.ICSPath
	}
	if c.Links.Reset == nil {
		c.Links.Reset = defaults.Links.Reset
	}
	if c.Links.ICalIcon == "" {
		c.Links.ICalIcon = defaults.Links.ICalIcon
	}
	if c.Links.ExternalIcon == "" {
		c.Links.ExternalIcon = defaults.Links.ExternalIcon
	}
	if c.Links.ExternalEnabled == nil {
		c.Links.ExternalEnabled = defaults.Links.ExternalEnabled
	}
	if c.Placeholder.Opening == "" {
		c.Placeholder.Opening = defaults.Placeholder.Opening
	}
	if c.Placeholder.Closing == "" {
		c.Placeholder.Closing = defaults.Placeholder.Closing
	}
	if len(c.Pages) == 0 {
		c.Pages = defaults.Pages
	}
	if c.Email.Group == "" {
		c.Email.Group = defaults.Email.Group
	}
	if len(c.Email.Variants) == 0 {
		c.Email.Variants = defaults.Email.Variants
	}
	if c.Email.Separator == "" {
		c.Email.Separator = defaults.Email.Separator
	}
	if c.Events.DefaultDuration == 0 {
		c.Events.DefaultDuration = defaults.Events.DefaultDuration
	}
	return c
}

func boolPtr(v bool) *bool {
	return &v
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
