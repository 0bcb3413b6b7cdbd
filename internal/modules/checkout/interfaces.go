package checkout

import (
	"context"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error
	GetActiveForCustomer(ctx context.Context, customerID int64) (*domain.Session, error)
}

// ReservationStore is the slice of the reservation service the
// orchestrator drives: look up the hold, confirm it against the created
// session, or release it when session creation fails.
type ReservationStore interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error)
	ConfirmReservation(ctx context.Context, id uuid.UUID, sessionID int64) error
	ReleaseReservation(ctx context.Context, id uuid.UUID)
}

// PaymentGateway is the narrow escrow contract. Capture happens upstream
// (the webhook that triggers finalization); only the compensating refund
// is needed here.
type PaymentGateway interface {
	Refund(ctx context.Context, paymentRef string) error
}

// NotificationSender is a fire-and-forget sink. Nil disables it.
type NotificationSender interface {
	NotifySessionBooked(ctx context.Context, customerID, mechanicID, sessionID int64, start time.Time) error
}
