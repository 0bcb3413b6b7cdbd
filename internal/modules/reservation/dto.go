package reservation

import "time"

type CreateReservationRequest struct {
	MechanicID  int64     `json:"mechanic_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	SessionType string    `json:"session_type"`
}
