// Package route maps delivery progress to a marker position on the tracking
// map. The mapping is a pure function of the progress value, so any client
// can redraw the marker from a progress number alone.
package route
