// Package tracking runs the active order of the storefront in real time.
//
// A Session wraps a services.DeliverySimulation with a scheduler: it waits
// the delay returned by each step, advances the simulation, and fans the
// result out to the notifier, the tracking publisher and, once delivered,
// the history recorder.
package tracking
