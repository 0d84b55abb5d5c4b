package domain

import "errors"

// Failure kinds surfaced by the domain and the services built on it.
// Callers branch with errors.Is; every service error wraps one of these.
var (
	ErrInvalidFormat   = errors.New("invalid format")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateEntity = errors.New("entity already exists")
	ErrNotFound        = errors.New("not found")

	ErrNoCapacity    = errors.New("no seats available")
	ErrInvalidSeat   = errors.New("seat number out of range")
	ErrSeatTaken     = errors.New("seat already taken")
	ErrAlreadyBooked = errors.New("passenger already booked on flight")
	ErrNotBooked     = errors.New("passenger not booked on flight")

	// ErrGateway marks failures coming from the persistence layer.
	ErrGateway = errors.New("persistence gateway failure")
)
