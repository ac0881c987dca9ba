// Package services provides domain services that span several aggregates of the storefront.
//
// The package includes:
//   - InventoryCoordinator: all-or-nothing stock reservation at checkout and stock restoration
//     on cancellation
//   - OrderNumberGenerator: human readable order numbers
//
// Domain services hold no state of their own; repositories are passed per call so that they
// run inside the caller's unit of work.
package services
