// Package ports declares what the tracking core needs from the outside world:
// a history store behind a unit of work, a scheduler, a notification sink and
// a tracking publisher. Adapters live under internal/adapters.
package ports
