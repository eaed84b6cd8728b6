package inventory

import "errors"

var (
	ErrSeatNotFound    = errors.New("seat not found")
	ErrAlreadyReserved = errors.New("seat is already reserved")
	ErrNotAvailable    = errors.New("seat is not available")
	ErrAlreadyBooked   = errors.New("seat is already booked")
	ErrNotReserved     = errors.New("seat is not reserved")
)

// IsConflict reports whether err represents a transition that is invalid
// given the seat's current status. Conflicts are expected outcomes the
// caller can recover from, as opposed to persistence failures.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyReserved) ||
		errors.Is(err, ErrNotAvailable) ||
		errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrNotReserved)
}
