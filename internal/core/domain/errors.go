package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrInvalidSeatClass      = errors.New("invalid seat class")
	ErrInvalidEvent          = errors.New("invalid event")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrCustomerEmailRequired = errors.New("customer email is required")
	ErrInsufficientCapacity  = errors.New("insufficient seats available")
)

// CapacityError reports a booking that asked for more seats than remained at
// the moment of the check.
type CapacityError struct {
	EventID   int64
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: event %d has %d seat(s) left, %d requested",
		ErrInsufficientCapacity, e.EventID, e.Remaining, e.Requested)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrBookingNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidSeatClass) ||
		errors.Is(err, ErrInvalidEvent) ||
		errors.Is(err, ErrCustomerNameRequired) ||
		errors.Is(err, ErrCustomerEmailRequired)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrInsufficientCapacity)
}
