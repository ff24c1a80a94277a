// Package order holds the delivery order aggregate of the depot.
//
// The package includes:
//   - Order: aggregate root owning line items and the status history
//   - Number: the YYYYMMDDSSSS order number
//   - Status and TransitionPolicy: the lifecycle state machine
//   - StatusChanged: the event recorded on every accepted transition
//
// Key business rules:
//   - orders start Planned and end Delivered or Cancelled
//   - every accepted transition appends exactly one history entry
//   - the actual delivery date exists only on Delivered orders
//   - an order without items cannot be delivered
//
// Allocation of order numbers and stock withdrawal live outside the
// aggregate, in the application and domain service layers.
package order
