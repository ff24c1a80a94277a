// Package kernel holds the value objects shared by every aggregate of the
// depot: identifiers, calendar dates and the clock used to stamp them.
//
// The package includes:
//   - UUID: surrogate identifier of orders, products, schools and movements
//   - Date: a calendar day without time of day, used for expected and actual
//     delivery dates and for the day component of order numbers
//   - Clock: source of the current instant, fixed to the depot's time zone
//
// All values are immutable. Zero values are invalid and are rejected by
// Validate.
package kernel
