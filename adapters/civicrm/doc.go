// Package civicrm adapts the CiviCRM event module conventions: the native
// iCalendar export route, the page kinds that carry an event and the
// workflow emails sent for event registrations.
package civicrm
