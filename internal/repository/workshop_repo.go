package repository

import (
	"context"
	"errors"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"gorm.io/gorm"
)

type WorkshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) *WorkshopRepository {
	return &WorkshopRepository{db: db}
}

// GetHoursForDay returns the workshop's operating-hours row for one
// weekday, or nil when no row exists (treated as closed by callers).
func (r *WorkshopRepository) GetHoursForDay(ctx context.Context, workshopID int64, dayOfWeek int) (*domain.WorkshopHours, error) {
	var h domain.WorkshopHours
	tx := r.db.WithContext(ctx).
		Where("workshop_id = ? AND day_of_week = ?", workshopID, dayOfWeek).
		First(&h)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &h, nil
}

func (r *WorkshopRepository) UpsertHours(ctx context.Context, h *domain.WorkshopHours) error {
	return r.db.WithContext(ctx).Save(h).Error
}
