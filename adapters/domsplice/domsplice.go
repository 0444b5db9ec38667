// Package domsplice fills the calendar links section by parsing the document
// with goquery instead of matching markers. The document is re-serialized by
// the HTML parser, so attribute quoting and entity forms may change.
package domsplice

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-addtocal/pkg/splice"
)

// DefaultSelector matches the CiviCRM calendar links section.
const DefaultSelector = ".iCal_links-section"

// ErrSelectorRequired is returned when the splicer has no selector.
var ErrSelectorRequired = errors.New("domsplice: selector is required")

var documentTag = regexp.MustCompile(`(?i)<(html|head|body)[\s>]`)

// Splicer replaces the inner HTML of the first element matching a CSS selector.
type Splicer struct {
	selector string
	// hint is a literal substring every matching document contains.
	hint string
}

var _ splice.Splicer = (*Splicer)(nil)

// Option configures a Splicer.
type Option func(*Splicer)

// WithHint sets a substring checked before parsing; documents without it are
// left alone without being parsed.
func WithHint(hint string) Option {
	return func(s *Splicer) {
		s.hint = hint
	}
}

// New returns a Splicer for selector.
func New(selector string, opts ...Option) (*Splicer, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, ErrSelectorRequired
	}
	s := &Splicer{selector: selector}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Contains reports whether the document has an element matching the selector.
func (s *Splicer) Contains(document string) bool {
	if s.hint != "" && !strings.Contains(document, s.hint) {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return false
	}
	return doc.Find(s.selector).Length() > 0
}

// Splice sets the inner HTML of the first matching element to replacement.
// A document without a match is returned unchanged.
func (s *Splicer) Splice(document, replacement string) (string, error) {
	if s.hint != "" && !strings.Contains(document, s.hint) {
		return document, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return document, fmt.Errorf("%w: %v", splice.ErrMalformedDocument, err)
	}
	target := doc.Find(s.selector).First()
	if target.Length() == 0 {
		return document, nil
	}
	target.SetHtml(replacement)

	out, err := serialize(doc, documentTag.MatchString(document))
	if err != nil {
		return document, fmt.Errorf("%w: %v", splice.ErrMalformedDocument, err)
	}
	return out, nil
}

// serialize renders the whole document, or for a fragment the children the
// parser placed in head followed by those in body. Leading style, meta and
// title elements of a fragment end up in head.
func serialize(doc *goquery.Document, whole bool) (string, error) {
	if whole {
		return goquery.OuterHtml(doc.Selection)
	}
	head, err := doc.Find("head").Html()
	if err != nil {
		return "", err
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return head + body, nil
}
