package templates

import "errors"

var (
	// ErrRendererConfig indicates the template renderer was misconfigured.
	ErrRendererConfig = errors.New("templates: renderer configuration is incomplete")
	// ErrLayoutNotFound is returned when no layout is registered under a name.
	ErrLayoutNotFound = errors.New("templates: layout not found")
	// ErrInvalidRenderRequest is returned when mandatory render inputs are missing.
	ErrInvalidRenderRequest = errors.New("templates: invalid render request")
)
