package order

import "errors"

var (
	// ErrNotFound is returned when an order does not exist or is not
	// visible to the requesting user.
	ErrNotFound = errors.New("order not found")

	// ErrValidation is returned for malformed or missing input.
	ErrValidation = errors.New("invalid order input")

	// ErrInvalidTransition is returned when a status change violates the
	// lifecycle rules, e.g. any transition out of Delivered.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrNotDeletable is returned when deletion is attempted on an order
	// that has not been delivered yet.
	ErrNotDeletable = errors.New("order is processing so order can't be deleted")

	// ErrStatusConflict is returned by the repository when a conditional
	// status update lost against a concurrent writer.
	ErrStatusConflict = errors.New("order status changed concurrently")
)
