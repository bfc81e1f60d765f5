// Package order provides the Order aggregate of the storefront: what was bought,
// at which prices, where it ships, and where it stands in its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding line items, price snapshot, payment and shipping data
//   - Status: the lifecycle state with an explicit transition table
//   - PaymentMethod / PaymentStatus: payment enumerations driven by status changes
//   - LineItem: one product/color/size/quantity entry with its price snapshot
//   - ShippingAddress: the embedded delivery address
//
// Key business rules:
//   - An order has at least one line item and every quantity is positive
//   - Status moves forward only: pending -> confirmed -> shipped -> delivered, with
//     forward skips allowed and cancellation possible from any non-final state
//   - delivered and cancelled are final; repeating them is rejected
//   - Cancelling stamps cancelAt/cancelReason and fails the payment
//   - Delivering stamps deliveredAt and marks the payment as paid
//
// Inventory and ledger side effects of a delivery are planned by
// services.FulfillmentPlanner and applied by the UpdateOrderStatus command.
package order
