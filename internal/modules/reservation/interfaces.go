package reservation

import (
	"context"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"github.com/google/uuid"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.SlotReservation, now time.Time) error
	Confirm(ctx context.Context, id uuid.UUID, sessionID int64, now time.Time) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error)
	GetActiveByMechanic(ctx context.Context, mechanicID int64) ([]domain.SlotReservation, error)
}

// AvailabilityChecker is the advisory pre-check run before inserting a
// hold. It narrows the race window for a better UX; the database-level
// guard is what actually prevents double-booking.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, mechanicID int64, start, end time.Time, sessionType domain.SessionType) domain.AvailabilityResult
}

// SlotBroadcaster pushes slot lifecycle events to connected picker grids.
// Optional; a nil broadcaster disables the feed.
type SlotBroadcaster interface {
	BroadcastSlotEvent(mechanicID int64, start, end time.Time, event string)
}
