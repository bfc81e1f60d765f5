// Package services provides domain services that coordinate several aggregates of the
// storefront. They hold no state and perform no I/O: they compute what must change and
// leave applying it to the application layer.
//
// The package includes:
//   - FulfillmentPlanner: derives the inventory adjustments and ledger entries of a
//     delivered order
package services
