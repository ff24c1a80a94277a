// Package product models the goods kept at the depot and the ledger of
// stock movements that changes their balance.
//
// Stock never goes negative: an outbound movement larger than the current
// balance is rejected with ErrNotEnoughStock.
package product
