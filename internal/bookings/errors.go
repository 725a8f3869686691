package bookings

import "errors"

var (
	// ErrNotFound is returned when a booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrForbidden is returned when a booking belongs to another user.
	ErrForbidden = errors.New("booking belongs to another user")

	// ErrInsufficientSeats is returned when the schedule has fewer seats
	// left than the booking asks for.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrSeatConflict is returned when a requested seat is already held by
	// a pending or confirmed booking on the same schedule.
	ErrSeatConflict = errors.New("some seats are already booked")

	// ErrAlreadyCancelled is returned when cancelling a booking twice.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrPassengerMismatch is returned when the passenger count does not
	// match the seat count.
	ErrPassengerMismatch = errors.New("passenger count must match seat count")
)
