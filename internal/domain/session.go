package domain

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionPending   SessionStatus = "pending"
	SessionLive      SessionStatus = "live"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// NonTerminalSessionStatuses are the statuses that still occupy the
// mechanic's time and therefore block overlapping bookings.
var NonTerminalSessionStatuses = []SessionStatus{SessionScheduled, SessionPending, SessionLive}

type SessionType string

const (
	SessionTypeChat  SessionType = "chat"
	SessionTypeVideo SessionType = "video"
	SessionTypeDiag  SessionType = "diagnostic"
)

type Session struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	MechanicID     int64         `json:"mechanic_id" gorm:"index;not null"`
	CustomerID     int64         `json:"customer_id" gorm:"index;not null"`
	Type           SessionType   `json:"type" gorm:"type:varchar(16);not null"`
	Plan           string        `json:"plan,omitempty"`
	Status         SessionStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	ScheduledStart time.Time     `json:"scheduled_start" gorm:"not null;index"`
	ScheduledEnd   time.Time     `json:"scheduled_end" gorm:"not null"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Session) TableName() string { return "sessions" }
