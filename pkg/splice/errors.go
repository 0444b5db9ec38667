package splice

import (
	"errors"
	"fmt"
)

var (
	// ErrPlaceholderAbsent reports that the opening marker is not in the document.
	ErrPlaceholderAbsent = errors.New("splice: placeholder absent")
	// ErrMalformedDocument reports an opening marker without a closing marker after it.
	ErrMalformedDocument = errors.New("splice: malformed document")
	// ErrInvalidMarkers is returned when a marker is empty.
	ErrInvalidMarkers = errors.New("splice: opening and closing markers are required")
)

// MalformedError carries the position of the unterminated opening marker.
type MalformedError struct {
	Opening string
	Closing string
	Offset  int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("splice: malformed document: %q at offset %d has no closing %q", e.Opening, e.Offset, e.Closing)
}

// Unwrap lets errors.Is match ErrMalformedDocument.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedDocument
}
