package domain

import "time"

// AvailabilityResult is a verdict, not an error: "unavailable" is an
// expected outcome and carries a user-displayable reason.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func Available() AvailabilityResult { return AvailabilityResult{Available: true} }

func Unavailable(reason string) AvailabilityResult {
	return AvailabilityResult{Available: false, Reason: reason}
}

// TimeSlot is one cell of the booking picker grid.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
