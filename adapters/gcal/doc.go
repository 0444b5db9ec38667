// Package gcal builds Google Calendar "add event" links from event data.
//
// Example usage:
//
//	source := memory.NewEventRepository(events...)
//	external := gcal.NewBuilder(source, gcal.WithDefaultDuration(90*time.Minute))
//	builder, _ := links.NewBuilder(native, links.WithExternal(external))
package gcal
