package domain

import "time"

type Workshop struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Workshop) TableName() string { return "workshops" }

// WorkshopHours is one weekday row of a workshop's operating schedule.
// Break columns are optional; when set they must lie within [open, close).
type WorkshopHours struct {
	ID         int64   `json:"id" gorm:"primaryKey"`
	WorkshopID int64   `json:"workshop_id" gorm:"index;not null"`
	DayOfWeek  int     `json:"day_of_week" gorm:"not null"` // 0 = Sunday
	OpenTime   string  `json:"open_time" gorm:"type:varchar(5)"`  // "HH:MM"
	CloseTime  string  `json:"close_time" gorm:"type:varchar(5)"`
	IsClosed   bool    `json:"is_closed" gorm:"not null;default:false"`
	BreakStart *string `json:"break_start,omitempty" gorm:"type:varchar(5)"`
	BreakEnd   *string `json:"break_end,omitempty" gorm:"type:varchar(5)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WorkshopHours) TableName() string { return "workshop_availability" }
