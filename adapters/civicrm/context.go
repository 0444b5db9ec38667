package civicrm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Default workflow email identifiers for event registrations.
const (
	EmailGroup          = "msg_tpl_workflow_event"
	EmailOnlineReceipt  = "event_online_receipt"
	EmailOfflineReceipt = "event_offline_receipt"
)

// PageResolver finds the event id in a page context using a fixed table of
// page kind to property name.
type PageResolver struct {
	properties map[string]string
}

// NewPageResolver copies table. Page kinds match exactly.
func NewPageResolver(table map[string]string) *PageResolver {
	properties := make(map[string]string, len(table))
	for kind, property := range table {
		properties[kind] = property
	}
	return &PageResolver{properties: properties}
}

// Applies reports whether pageKind is in the table.
func (r *PageResolver) Applies(pageKind string) bool {
	_, ok := r.properties[pageKind]
	return ok
}

// ResolvePage returns the event id for pageKind, or false when the page kind
// is not listed or the property is missing or empty.
func (r *PageResolver) ResolvePage(ctx context.Context, pageKind string, pageContext map[string]any) (string, bool) {
	property, ok := r.properties[pageKind]
	if !ok {
		return "", false
	}
	return idValue(pageContext[property])
}

// EmailResolver recognizes event workflow emails and reads the event id from
// the template payload at event.id.
type EmailResolver struct {
	group    string
	variants map[string]struct{}
}

// NewEmailResolver scopes the resolver to group and variants.
func NewEmailResolver(group string, variants ...string) *EmailResolver {
	set := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return &EmailResolver{group: strings.TrimSpace(group), variants: set}
}

// ResolveEmail returns the event id for an event workflow email.
func (r *EmailResolver) ResolveEmail(ctx context.Context, group, variant string, payload map[string]any) (string, bool) {
	if group != r.group {
		return "", false
	}
	if _, ok := r.variants[variant]; !ok {
		return "", false
	}
	switch event := payload["event"].(type) {
	case map[string]any:
		return idValue(event["id"])
	case map[string]string:
		return idValue(event["id"])
	}
	return "", false
}

// idValue normalizes numeric and string ids. Only positive integers are
// event ids; anything else is absent.
func idValue(raw any) (string, bool) {
	var id string
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		id = v
	case int:
		id = strconv.FormatInt(int64(v), 10)
	case int32:
		id = strconv.FormatInt(int64(v), 10)
	case int64:
		id = strconv.FormatInt(v, 10)
	case uint:
		id = strconv.FormatUint(uint64(v), 10)
	case uint64:
		id = strconv.FormatUint(v, 10)
	case float64:
		if v != float64(int64(v)) {
			return "", false
		}
		id = strconv.FormatInt(int64(v), 10)
	case fmt.Stringer:
		id = v.String()
	default:
		return "", false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return "", false
	}
	return strconv.FormatUint(n, 10), true
}
