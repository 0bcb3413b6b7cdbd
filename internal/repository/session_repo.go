package repository

import (
	"context"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// HasConflict reports whether any non-terminal session for the mechanic
// overlaps [start, end). Half-open, so back-to-back sessions do not clash.
func (r *SessionRepository) HasConflict(ctx context.Context, mechanicID int64, start, end time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("mechanic_id = ?", mechanicID).
		Where("status IN ?", domain.NonTerminalSessionStatuses).
		Where("scheduled_start < ? AND scheduled_end > ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// GetActiveForCustomer returns the customer's most recent session that is
// still pending or live, or nil.
func (r *SessionRepository) GetActiveForCustomer(ctx context.Context, customerID int64) (*domain.Session, error) {
	var sessions []domain.Session
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("status IN ?", []domain.SessionStatus{domain.SessionPending, domain.SessionLive}).
		Order("created_at DESC").
		Limit(1).
		Find(&sessions)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	var s domain.Session
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}
