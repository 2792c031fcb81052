package core

import "errors"

// Sentinel errors shared across services. Handlers map them to HTTP status
// codes with errors.Is; service methods wrap them with operation context.
var (
	ErrCarNotFound      = errors.New("car not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrForbidden        = errors.New("you do not have permission to perform this action")
	ErrCarAlreadyBooked = errors.New("car is already booked")
)
