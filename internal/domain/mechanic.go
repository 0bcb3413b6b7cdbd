package domain

import "time"

type MechanicType string

const (
	MechanicVirtualOnly         MechanicType = "virtual_only"
	MechanicIndependentWorkshop MechanicType = "independent_workshop"
	MechanicWorkshopAffiliated  MechanicType = "workshop_affiliated"
)

type Mechanic struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	DisplayName  string       `json:"display_name"`
	MechanicType MechanicType `json:"mechanic_type" gorm:"type:varchar(32);not null"`
	// Set only for workshop_affiliated mechanics.
	WorkshopID *int64    `json:"workshop_id,omitempty" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Workshop *Workshop `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
}

func (Mechanic) TableName() string { return "mechanics" }

// WeeklyAvailabilityRule is one recurring window in a mechanic's personal
// schedule. Several rules on the same weekday union together.
type WeeklyAvailabilityRule struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	MechanicID int64     `json:"mechanic_id" gorm:"index;not null"`
	DayOfWeek  int       `json:"day_of_week" gorm:"not null"` // 0 = Sunday
	StartTime  string    `json:"start_time" gorm:"type:varchar(5);not null"` // "HH:MM"
	EndTime    string    `json:"end_time" gorm:"type:varchar(5);not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WeeklyAvailabilityRule) TableName() string { return "mechanic_availability" }
