package domain

import (
	"time"

	"gorm.io/datatypes"
)

// TimeOffPeriod blocks whole calendar days, inclusive on both bounds.
// A single overlapping day makes every window on that day unbookable.
type TimeOffPeriod struct {
	ID         int64          `json:"id" gorm:"primaryKey"`
	MechanicID int64          `json:"mechanic_id" gorm:"index;not null"`
	StartDate  datatypes.Date `json:"start_date" gorm:"type:date;not null"`
	EndDate    datatypes.Date `json:"end_date" gorm:"type:date;not null"`
	Reason     string         `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (TimeOffPeriod) TableName() string { return "mechanic_time_off" }
