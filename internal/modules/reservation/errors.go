package reservation

import "errors"

var (
	ErrValidation = errors.New("validation error")

	// ErrNotAvailable: the advisory availability pre-check rejected the
	// window. Carries the evaluator's reason when wrapped.
	ErrNotAvailable = errors.New("time slot is no longer available")

	// ErrSlotTaken: the storage-level overlap guard rejected the insert —
	// a concurrent checkout won the slot. Callers should re-render slot
	// selection, not retry blindly.
	ErrSlotTaken = errors.New("time slot was just booked by another customer")

	// ErrStaleReservation: a compare-and-swap transition matched zero
	// rows; the hold expired or was cancelled in the meantime.
	ErrStaleReservation = errors.New("reservation is no longer in a reservable state")

	ErrNotFound = errors.New("reservation not found")
)
