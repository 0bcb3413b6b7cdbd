package checkout

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrActiveSessionExists: the customer already has a pending or live
	// session and cannot book another until it finishes.
	ErrActiveSessionExists = errors.New("customer already has an active session")

	// ErrReservationGone: payment succeeded but the hold was expired or
	// cancelled before confirmation. The service triggers a best-effort
	// refund; the rest is operator reconciliation.
	ErrReservationGone = errors.New("reservation expired before confirmation")
)
