package order

import (
	"database/sql/driver"
	"fmt"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
	}
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. The lifecycle is forward-only (Processing -> Shipped -> Delivered)
// with a side exit to Cancelled from any non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusShipped:
		return s == StatusProcessing
	case StatusDelivered:
		return s == StatusProcessing || s == StatusShipped
	case StatusCancelled:
		return true
	default:
		return false
	}
}
