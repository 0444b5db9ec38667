// Package localization adapts a go-i18n translator to the links.Localizer
// contract. Keys are namespaced by the extension domain.
package localization

import (
	"context"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-addtocal/pkg/interfaces/logger"
	"github.com/goliatone/go-addtocal/pkg/links"
)

type localeKey struct{}

// WithLocale stores the request locale on ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeKey{}, strings.TrimSpace(locale))
}

// LocaleFrom returns the locale stored on ctx, if any.
func LocaleFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}

// QualifiedKey prefixes key with domain.
func QualifiedKey(domain, key string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return key
	}
	return domain + "." + key
}

// Localizer resolves labels for the extension domain.
type Localizer struct {
	translator    i18n.Translator
	domain        string
	defaultLocale string
	logger        logger.Logger
}

var _ links.Localizer = (*Localizer)(nil)

// NewLocalizer wraps translator. A nil translator yields the English defaults.
func NewLocalizer(translator i18n.Translator, domain, defaultLocale string, l logger.Logger) *Localizer {
	return &Localizer{
		translator:    translator,
		domain:        strings.TrimSpace(domain),
		defaultLocale: strings.TrimSpace(defaultLocale),
		logger:        logger.OrNop(l),
	}
}

// Translate returns the label for key in the context locale. Missing
// translations fall back to the English default, then to the key itself.
func (l *Localizer) Translate(ctx context.Context, key string) string {
	locale := LocaleFrom(ctx)
	if locale == "" {
		locale = l.defaultLocale
	}
	if l.translator != nil {
		label, err := l.translator.Translate(locale, QualifiedKey(l.domain, key))
		if err == nil && label != "" {
			return label
		}
		l.logger.Debug("translation missing",
			logger.F("key", key),
			logger.F("locale", locale),
			logger.F("error", err),
		)
	}
	if label, ok := DefaultMessages[key]; ok {
		return label
	}
	return key
}
