package splice

import (
	"regexp"
	"strings"
)

// Default markers for the event page calendar section.
const (
	DefaultOpening = `iCal_links-section">`
	DefaultClosing = `</div>`
)

// Markers delimit a placeholder region.
type Markers struct {
	Opening string
	Closing string
}

// DefaultMarkers returns the markers of the event page calendar section.
func DefaultMarkers() Markers {
	return Markers{Opening: DefaultOpening, Closing: DefaultClosing}
}

func (m Markers) valid() bool {
	return m.Opening != "" && m.Closing != ""
}

// Splicer replaces the inner content of a placeholder region.
type Splicer interface {
	// Splice returns document with the region's content replaced. When the
	// opening marker is absent the document is returned with a nil error.
	// When the region is not terminated the original document is returned
	// with an error matching ErrMalformedDocument.
	Splice(document, replacement string) (string, error)
	// Contains reports whether document carries the opening marker.
	Contains(document string) bool
}

// PatternSplicer matches the region with a non-greedy, multi-line pattern.
type PatternSplicer struct {
	markers Markers
	pattern *regexp.Regexp
}

var _ Splicer = (*PatternSplicer)(nil)

// NewPatternSplicer compiles the region pattern for markers.
func NewPatternSplicer(markers Markers) (*PatternSplicer, error) {
	if !markers.valid() {
		return nil, ErrInvalidMarkers
	}
	pattern, err := regexp.Compile(`(?s)` + regexp.QuoteMeta(markers.Opening) + `.*?` + regexp.QuoteMeta(markers.Closing))
	if err != nil {
		return nil, err
	}
	return &PatternSplicer{markers: markers, pattern: pattern}, nil
}

// Markers returns the markers the splicer was built with.
func (s *PatternSplicer) Markers() Markers {
	return s.markers
}

// Contains reports whether document carries the opening marker.
func (s *PatternSplicer) Contains(document string) bool {
	return strings.Contains(document, s.markers.Opening)
}

// Splice replaces the first region only.
func (s *PatternSplicer) Splice(document, replacement string) (string, error) {
	start := strings.Index(document, s.markers.Opening)
	if start < 0 {
		return document, nil
	}
	loc := s.pattern.FindStringIndex(document)
	if loc == nil {
		return document, &MalformedError{
			Opening: s.markers.Opening,
			Closing: s.markers.Closing,
			Offset:  start,
		}
	}

	var b strings.Builder
	b.Grow(len(document) - (loc[1] - loc[0]) + len(s.markers.Opening) + len(replacement) + len(s.markers.Closing))
	b.WriteString(document[:loc[0]])
	b.WriteString(s.markers.Opening)
	b.WriteString(replacement)
	b.WriteString(s.markers.Closing)
	b.WriteString(document[loc[1]:])
	return b.String(), nil
}

// Content splices document once with a PatternSplicer built from markers.
func Content(document string, markers Markers, replacement string) (string, error) {
	splicer, err := NewPatternSplicer(markers)
	if err != nil {
		return document, err
	}
	return splicer.Splice(document, replacement)
}

// ReplaceFirst swaps the first occurrence of anchor for replacement. The
// document is returned unchanged with ErrPlaceholderAbsent when anchor does
// not occur or is empty.
func ReplaceFirst(document, anchor, replacement string) (string, error) {
	if anchor == "" {
		return document, ErrPlaceholderAbsent
	}
	idx := strings.Index(document, anchor)
	if idx < 0 {
		return document, ErrPlaceholderAbsent
	}
	return document[:idx] + replacement + document[idx+len(anchor):], nil
}

// ReplaceLink swaps the first anchor element whose entire text is phrase for
// replacement, so the result never nests links. When the first occurrence of
// phrase is not the text of such an element it is replaced as in ReplaceFirst.
func ReplaceLink(document, phrase, replacement string) (string, error) {
	if phrase == "" {
		return document, ErrPlaceholderAbsent
	}
	bare := strings.Index(document, phrase)
	if bare < 0 {
		return document, ErrPlaceholderAbsent
	}
	pattern := regexp.MustCompile(`<[aA]\b[^>]*>\s*` + regexp.QuoteMeta(phrase) + `\s*</[aA]\s*>`)
	loc := pattern.FindStringIndex(document)
	if loc == nil || bare < loc[0] || bare >= loc[1] {
		return ReplaceFirst(document, phrase, replacement)
	}
	return document[:loc[0]] + replacement + document[loc[1]:], nil
}
