package ports

import "errors"

// ErrDuplicateOrderNumber reports that the storage rejected an order because
// its number is already taken.
var ErrDuplicateOrderNumber = errors.New("order number already taken")
