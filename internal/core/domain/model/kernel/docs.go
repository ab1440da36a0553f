// Package kernel provides the value objects shared by the tracking domain:
//   - UUID: identifier of orders
//   - Point: a position on the percentage-based tracking map
//   - Money: a non-negative amount in whole rupees
//
// All of them are immutable, created through constructors and guarded with
// guard.ConstructorGuard so that zero values fail validation.
package kernel
