package domain

import (
	"errors"
	"fmt"
)

// Business failures: expected outcomes reported to the caller. None of them
// leaves any pool or stock mutated; the customer's coins stay in the hopper.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("product out of stock")
	ErrInsufficientFunds    = errors.New("insufficient funds inserted")
	ErrChangeImpossible     = errors.New("exact change cannot be made")
	ErrAccessDenied         = errors.New("access denied")
	ErrProductAlreadyExists = errors.New("product already exists")
)

// InvariantViolationError signals corrupted cash bookkeeping: a commit-time
// re-decomposition failed after feasibility was verified, or a computed
// deduction could not be satisfied from actual pool contents. It is a
// programming bug, never a business condition, and is raised via panic so it
// cannot be mistaken for a retryable error.
type InvariantViolationError struct {
	Op     string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("cash invariant violated in %s: %s", e.Op, e.Detail)
}

// NewInvariantViolation builds an InvariantViolationError for op.
func NewInvariantViolation(op, format string, args ...any) *InvariantViolationError {
	return &InvariantViolationError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
