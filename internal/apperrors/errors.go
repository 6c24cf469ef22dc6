package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation,
// e.g. approving a credit that is already active.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInsufficientFunds indicates that a debit would exceed the available balance.
var ErrInsufficientFunds = errors.New("insufficient funds")
