// Package services holds the domain services of the tracking core:
//   - DeliverySimulation: the status/progress state machine of one order
//   - DriverDispatcher: picks a delivery partner and attaches it to an order
//
// Neither service knows about time or concurrency; the application layer
// schedules Advance calls and serializes access.
package services
