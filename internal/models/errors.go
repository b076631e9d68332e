package models

import "fmt"

// ValidationError reports a rejected argument, such as a non-positive
// quantity or an out-of-stock dessert.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup of an unknown dessert or order id.
type NotFoundError struct {
	Kind string // "cart item" or "order"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

// InvalidStateError reports an operation attempted against state that cannot
// support it, such as creating an order from an empty cart.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// InvalidTransitionError reports an order status transition that is not
// permitted from the order's current status.
type InvalidTransitionError struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot transition from %s to %s", e.OrderID, e.From, e.To)
}
