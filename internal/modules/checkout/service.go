package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/reservation"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Service turns a paid-for hold into a durable session: create the
// session record, confirm the hold, and compensate when either half
// fails.
type Service struct {
	sessions     SessionRepository
	reservations ReservationStore
	payments     PaymentGateway
	notifs       NotificationSender
}

func NewService(
	sessions SessionRepository,
	reservations ReservationStore,
	payments PaymentGateway,
	notifs NotificationSender,
) *Service {
	return &Service{
		sessions:     sessions,
		reservations: reservations,
		payments:     payments,
		notifs:       notifs,
	}
}

type FinalizeParams struct {
	ReservationID uuid.UUID
	CustomerID    int64
	Plan          string
	// PaymentRef identifies the captured payment for refunds.
	PaymentRef string
}

// FinalizeCheckout runs after payment capture. Failure handling:
//
//   - session creation fails -> release the hold so it does not sit
//     locked for the rest of the 15-minute window;
//   - confirm loses the CAS (hold expired mid-payment) -> cancel the
//     session, refund best-effort, surface ErrReservationGone.
func (s *Service) FinalizeCheckout(ctx context.Context, p FinalizeParams) (*domain.Session, error) {
	res, err := s.reservations.GetReservation(ctx, p.ReservationID)
	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	active, err := s.sessions.GetActiveForCustomer(ctx, p.CustomerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveSessionExists
	}

	sess := &domain.Session{
		MechanicID:     res.MechanicID,
		CustomerID:     p.CustomerID,
		Type:           sessionTypeFromMetadata(res.Metadata),
		Plan:           p.Plan,
		Status:         domain.SessionScheduled,
		ScheduledStart: res.StartTime,
		ScheduledEnd:   res.EndTime,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.reservations.ReleaseReservation(ctx, p.ReservationID)
		return nil, err
	}

	if err := s.reservations.ConfirmReservation(ctx, p.ReservationID, sess.ID); err != nil {
		if cErr := s.sessions.UpdateStatus(ctx, sess.ID, domain.SessionCancelled); cErr != nil {
			log.WithError(cErr).WithField("session_id", sess.ID).Error("checkout: failed to cancel orphaned session")
		}
		if errors.Is(err, reservation.ErrStaleReservation) {
			s.refund(ctx, p.PaymentRef)
			return nil, ErrReservationGone
		}
		return nil, err
	}

	if s.notifs != nil {
		if nErr := s.notifs.NotifySessionBooked(ctx, p.CustomerID, res.MechanicID, sess.ID, sess.ScheduledStart); nErr != nil {
			log.WithError(nErr).WithField("session_id", sess.ID).Warn("checkout: booking notification failed")
		}
	}

	return sess, nil
}

func (s *Service) refund(ctx context.Context, paymentRef string) {
	if s.payments == nil || paymentRef == "" {
		return
	}
	if err := s.payments.Refund(ctx, paymentRef); err != nil {
		log.WithError(err).WithField("payment_ref", paymentRef).Error("checkout: compensating refund failed, needs manual reconciliation")
	}
}

func sessionTypeFromMetadata(raw datatypes.JSON) domain.SessionType {
	var meta struct {
		SessionType string `json:"session_type"`
	}
	if err := json.Unmarshal(raw, &meta); err == nil && meta.SessionType != "" {
		return domain.SessionType(meta.SessionType)
	}
	return domain.SessionTypeVideo
}
