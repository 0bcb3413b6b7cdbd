package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/clock"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// HoldDuration is how long a checkout keeps a slot before the sweep may
// reclaim it.
const HoldDuration = 15 * time.Minute

type Service struct {
	reservations ReservationRepository
	availability AvailabilityChecker
	feed         SlotBroadcaster
	clock        clock.Clock
}

func NewService(
	reservations ReservationRepository,
	availability AvailabilityChecker,
	feed SlotBroadcaster,
	clk clock.Clock,
) *Service {
	return &Service{
		reservations: reservations,
		availability: availability,
		feed:         feed,
		clock:        clk,
	}
}

type CreateParams struct {
	MechanicID  int64
	StartTime   time.Time
	EndTime     time.Time
	SessionType domain.SessionType
}

// CreateReservation places a 15-minute hold on the slot. The availability
// pre-check is advisory: a competing checkout can still slip between the
// check and the insert, which is why the insert itself is guarded at the
// storage layer and ErrSlotTaken is a normal outcome here.
func (s *Service) CreateReservation(ctx context.Context, p CreateParams) (*domain.SlotReservation, error) {
	if !p.EndTime.After(p.StartTime) {
		return nil, ErrValidation
	}
	if p.MechanicID <= 0 {
		return nil, ErrValidation
	}

	verdict := s.availability.IsAvailable(ctx, p.MechanicID, p.StartTime, p.EndTime, p.SessionType)
	if !verdict.Available {
		return nil, fmt.Errorf("%w: %s", ErrNotAvailable, verdict.Reason)
	}

	now := s.clock.Now()
	expiresAt := now.Add(HoldDuration)

	sessionType := p.SessionType
	if sessionType == "" {
		sessionType = domain.SessionTypeVideo
	}
	metadata, _ := json.Marshal(map[string]string{
		"session_type": string(sessionType),
		"created_by":   "customer_checkout",
	})

	res := &domain.SlotReservation{
		MechanicID: p.MechanicID,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		Status:     domain.ReservationReserved,
		ExpiresAt:  &expiresAt,
		Metadata:   metadata,
		CreatedAt:  now,
	}

	if err := s.reservations.Create(ctx, res, now); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrSlotTaken
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.broadcast(res, "reserved")
	return res, nil
}

// ConfirmReservation links a paid-for hold to its session. CAS semantics:
// if the hold is no longer reserved the caller gets ErrStaleReservation
// and owns the compensating action (refund, operator alert).
func (s *Service) ConfirmReservation(ctx context.Context, id uuid.UUID, sessionID int64) error {
	ok, err := s.reservations.Confirm(ctx, id, sessionID, s.clock.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrStaleReservation
	}

	if res, err := s.reservations.GetByID(ctx, id); err == nil && res != nil {
		s.broadcast(res, "confirmed")
	}
	return nil
}

// ReleaseReservation cancels a hold. Best-effort by contract: it runs on
// the caller's own failure paths (aborted checkout, failed payment) and
// must never add a second failure there, so problems are only logged.
func (s *Service) ReleaseReservation(ctx context.Context, id uuid.UUID) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil || res == nil {
		if err != nil {
			log.WithError(err).WithField("reservation_id", id).Warn("release: lookup failed")
		}
		return
	}

	ok, err := s.reservations.Cancel(ctx, id)
	if err != nil {
		log.WithError(err).WithField("reservation_id", id).Warn("release: cancel failed")
		return
	}
	if ok {
		s.broadcast(res, "released")
	}
}

// ReleaseExpiredReservations sweeps stale holds to expired. Safe to run
// concurrently with itself and with live traffic; re-running when nothing
// is due is a no-op returning 0.
func (s *Service) ReleaseExpiredReservations(ctx context.Context) (int64, error) {
	return s.reservations.ExpireDue(ctx, s.clock.Now())
}

func (s *Service) GetReservation(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// GetMechanicReservations lists non-terminal holds for calendar display.
func (s *Service) GetMechanicReservations(ctx context.Context, mechanicID int64) ([]domain.SlotReservation, error) {
	return s.reservations.GetActiveByMechanic(ctx, mechanicID)
}

func (s *Service) broadcast(res *domain.SlotReservation, event string) {
	if s.feed == nil {
		return
	}
	s.feed.BroadcastSlotEvent(res.MechanicID, res.StartTime, res.EndTime, event)
}
