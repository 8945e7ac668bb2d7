package services

import "errors"

// Failure taxonomy of the availability/booking engine. Every failure is
// per-request and recoverable by the caller choosing different input.
var (
	// ErrInvalidRange: checkOut <= checkIn. A bad range is a caller error,
	// never silently reported as "available".
	ErrInvalidRange = errors.New("invalid_range")

	// ErrNotFound: property, room or reservation does not exist.
	ErrNotFound = errors.New("not_found")

	// ErrCapacityExceeded: the requested room(s)/beds are no longer free for
	// the requested dates. Terminal outcome of a booking attempt; callers
	// re-prompt the user instead of retrying.
	ErrCapacityExceeded = errors.New("capacity_exceeded")

	// ErrInvalidClaim: the claim shape itself is malformed (no rooms, bed
	// count on a standard room, and so on).
	ErrInvalidClaim = errors.New("invalid_claim")

	// Consolidation validation failures.
	ErrInsufficientSelection = errors.New("insufficient_selection")
	ErrNoPrimarySelected     = errors.New("no_primary_selected")
	ErrNotInHouse            = errors.New("not_in_house")
	ErrAlreadyBilled         = errors.New("already_billed")

	// Lifecycle transition failures.
	ErrNotConfirmed = errors.New("not_confirmed")
	ErrNotCheckedIn = errors.New("not_checked_in")
)
