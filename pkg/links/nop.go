package links

import "context"

// NopExternal implements ExternalURLBuilder without ever offering a link.
type NopExternal struct{}

var _ ExternalURLBuilder = (*NopExternal)(nil)

// BuildExternalURL always reports the link as unavailable.
func (n *NopExternal) BuildExternalURL(ctx context.Context, eventID string) (string, error) {
	return "", ErrLinkUnavailable
}
