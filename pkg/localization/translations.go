package localization

import (
	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-addtocal/pkg/links"
)

// MessageEmailAnchor is the default email link text replaced by the link set.
const MessageEmailAnchor = "email.anchor"

// DefaultMessages holds the English labels keyed without the domain prefix.
var DefaultMessages = map[string]string{
	links.MessageICalTitle:     "Add to desktop calendar",
	links.MessageExternalTitle: "Add to Google calendar",
	MessageEmailAnchor:         "Download iCalendar File",
}

// Translations returns the default catalogs with keys prefixed by domain.
func Translations(domain string) i18n.Translations {
	return i18n.Translations{
		"en": newCatalog("en", domain, DefaultMessages),
		"fr": newCatalog("fr", domain, map[string]string{
			links.MessageICalTitle:     "Ajouter au calendrier de bureau",
			links.MessageExternalTitle: "Ajouter à Google Agenda",
			MessageEmailAnchor:         "Télécharger le fichier iCalendar",
		}),
		"es": newCatalog("es", domain, map[string]string{
			links.MessageICalTitle:     "Añadir al calendario de escritorio",
			links.MessageExternalTitle: "Añadir a Google Calendar",
			MessageEmailAnchor:         "Descargar archivo iCalendar",
		}),
	}
}

func newCatalog(locale, domain string, entries map[string]string) *i18n.TranslationCatalog {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[QualifiedKey(domain, key)] = msg
	}
	return catalog
}

// NewTranslator builds a go-i18n translator over the default catalogs.
func NewTranslator(domain, defaultLocale string) (i18n.Translator, error) {
	store := i18n.NewStaticStore(Translations(domain))
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(defaultLocale))
}
