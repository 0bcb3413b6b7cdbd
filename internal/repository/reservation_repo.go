package repository

import (
	"context"
	"errors"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOverlap is returned when an insert would collide with a live hold.
// On Postgres the exclusion constraint raises the same condition as a
// pgconn error; the service layer maps both to one user-facing outcome.
var ErrOverlap = errors.New("reservation overlaps a live hold")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a new hold inside one transaction. Stale holds (reserved
// past expires_at) overlapping the window are flipped to expired first so
// they cannot block the insert, then remaining overlaps are counted as an
// in-transaction check. The count is advisory on Postgres — the exclusion
// constraint installed by database.Migrate is the real arbiter under
// concurrency — but it is what makes the SQLite path honest too.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.SlotReservation, now time.Time) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.SlotReservation{}).
			Where("mechanic_id = ? AND status = ?", res.MechanicID, domain.ReservationReserved).
			Where("expires_at IS NOT NULL AND expires_at < ?", now).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Update("status", domain.ReservationExpired).Error; err != nil {
			return err
		}

		var cnt int64
		if err := tx.Model(&domain.SlotReservation{}).
			Where("mechanic_id = ?", res.MechanicID).
			Where("status IN ?", []domain.ReservationStatus{domain.ReservationReserved, domain.ReservationConfirmed}).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		return tx.Create(res).Error
	})
}

// Confirm performs the reserved -> confirmed transition. The predicate on
// status makes it a compare-and-swap: a reservation already expired or
// cancelled is left untouched and false is returned.
func (r *ReservationRepository) Confirm(ctx context.Context, id uuid.UUID, sessionID int64, now time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.SlotReservation{}).
		Where("id = ? AND status = ?", id, domain.ReservationReserved).
		Updates(map[string]interface{}{
			"status":       domain.ReservationConfirmed,
			"session_id":   sessionID,
			"confirmed_at": now,
			"expires_at":   nil,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// Cancel moves a still-reserved hold to cancelled. Zero rows affected
// means the hold already reached a terminal state.
func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&domain.SlotReservation{}).
		Where("id = ? AND status = ?", id, domain.ReservationReserved).
		Update("status", domain.ReservationCancelled)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// ExpireDue is the sweep: every reserved hold past its expires_at becomes
// expired. Idempotent; returns the number of rows transitioned.
func (r *ReservationRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.SlotReservation{}).
		Where("status = ?", domain.ReservationReserved).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Update("status", domain.ReservationExpired)
	return tx.RowsAffected, tx.Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SlotReservation, error) {
	var res domain.SlotReservation
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&res)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &res, nil
}

// GetActiveByMechanic lists the mechanic's non-terminal holds ordered by
// start time, for calendar display.
func (r *ReservationRepository) GetActiveByMechanic(ctx context.Context, mechanicID int64) ([]domain.SlotReservation, error) {
	var out []domain.SlotReservation
	tx := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Where("status IN ?", []domain.ReservationStatus{domain.ReservationReserved, domain.ReservationConfirmed}).
		Order("start_time ASC").
		Find(&out)
	return out, tx.Error
}

// HasBlockingHold reports whether a live, unexpired hold overlaps the
// window. Used by availability checks so that a stale hold the sweep has
// not reached yet never shows a slot as taken.
func (r *ReservationRepository) HasBlockingHold(ctx context.Context, mechanicID int64, start, end time.Time, now time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.SlotReservation{}).
		Where("mechanic_id = ?", mechanicID).
		Where("status IN ?", []domain.ReservationStatus{domain.ReservationReserved, domain.ReservationConfirmed}).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
