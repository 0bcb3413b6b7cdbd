package repository

import (
	"context"
	"errors"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"gorm.io/gorm"
)

type MechanicRepository struct {
	db *gorm.DB
}

func NewMechanicRepository(db *gorm.DB) *MechanicRepository {
	return &MechanicRepository{db: db}
}

func (r *MechanicRepository) GetByID(ctx context.Context, id int64) (*domain.Mechanic, error) {
	var m domain.Mechanic
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &m, nil
}

// GetRulesForDay returns the mechanic's recurring schedule windows for one
// weekday, ordered by start time. Multiple rows union together.
func (r *MechanicRepository) GetRulesForDay(ctx context.Context, mechanicID int64, dayOfWeek int) ([]domain.WeeklyAvailabilityRule, error) {
	var rules []domain.WeeklyAvailabilityRule
	tx := r.db.WithContext(ctx).
		Where("mechanic_id = ? AND day_of_week = ?", mechanicID, dayOfWeek).
		Order("start_time ASC").
		Find(&rules)
	return rules, tx.Error
}

// GetTimeOffOverlapping returns time-off periods touching any calendar day
// in [startDay, endDay]. Bounds are midnight-truncated; time-off is
// day-granular so the overlap test is on dates, not instants.
func (r *MechanicRepository) GetTimeOffOverlapping(ctx context.Context, mechanicID int64, startDay, endDay time.Time) ([]domain.TimeOffPeriod, error) {
	var periods []domain.TimeOffPeriod
	tx := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Where("start_date <= ? AND end_date >= ?", endDay, startDay).
		Find(&periods)
	return periods, tx.Error
}

// ListRules returns the mechanic's whole recurring schedule, ordered for
// display (day, then start time).
func (r *MechanicRepository) ListRules(ctx context.Context, mechanicID int64) ([]domain.WeeklyAvailabilityRule, error) {
	var rules []domain.WeeklyAvailabilityRule
	tx := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules)
	return rules, tx.Error
}

func (r *MechanicRepository) ListTimeOff(ctx context.Context, mechanicID int64) ([]domain.TimeOffPeriod, error) {
	var periods []domain.TimeOffPeriod
	tx := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Order("start_date ASC").
		Find(&periods)
	return periods, tx.Error
}

func (r *MechanicRepository) CreateRule(ctx context.Context, rule *domain.WeeklyAvailabilityRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *MechanicRepository) CreateTimeOff(ctx context.Context, period *domain.TimeOffPeriod) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// DeleteRule removes one schedule window owned by the mechanic.
func (r *MechanicRepository) DeleteRule(ctx context.Context, mechanicID, ruleID int64) error {
	return r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID).
		Delete(&domain.WeeklyAvailabilityRule{}, ruleID).Error
}
