// Package links builds the ordered set of "add to calendar" links for an event.
// The native iCalendar link is always present; the external provider link is
// added only when an ExternalURLBuilder can produce a URL for the event.
// NopExternal provides a builder that never offers an external link.
package links
