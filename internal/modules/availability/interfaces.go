package availability

import (
	"context"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
)

// MechanicRepository defines the mechanic-side reads the evaluator needs.
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
	GetRulesForDay(ctx context.Context, mechanicID int64, dayOfWeek int) ([]domain.WeeklyAvailabilityRule, error)
	GetTimeOffOverlapping(ctx context.Context, mechanicID int64, startDay, endDay time.Time) ([]domain.TimeOffPeriod, error)
}

// WorkshopRepository resolves operating hours for affiliated mechanics.
type WorkshopRepository interface {
	GetHoursForDay(ctx context.Context, workshopID int64, dayOfWeek int) (*domain.WorkshopHours, error)
}

// SessionRepository answers the existing-session conflict check.
type SessionRepository interface {
	HasConflict(ctx context.Context, mechanicID int64, start, end time.Time) (bool, error)
}

// ReservationConflicts answers whether a live checkout hold occupies the
// window. Expired-but-unswept holds must not count.
type ReservationConflicts interface {
	HasBlockingHold(ctx context.Context, mechanicID int64, start, end, now time.Time) (bool, error)
}
