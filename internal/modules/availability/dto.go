package availability

import "github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

type CheckAvailabilityQuery struct {
	Start       string `form:"start" binding:"required"` // RFC 3339
	End         string `form:"end" binding:"required"`
	SessionType string `form:"type"`
}

type SlotsQuery struct {
	Date        string `form:"date" binding:"required"` // "2006-01-02"
	SessionType string `form:"type"`
	Duration    int    `form:"duration"` // minutes
}

type SlotsResponse struct {
	MechanicID int64             `json:"mechanic_id"`
	Date       string            `json:"date"`
	Slots      []domain.TimeSlot `json:"slots"`
}
