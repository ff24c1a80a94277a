// Package services holds domain logic that spans more than one aggregate.
//
// The package includes:
//   - DeliveryFinalizer: delivers an order and withdraws its items from stock
//     as a single all-or-nothing step
package services
