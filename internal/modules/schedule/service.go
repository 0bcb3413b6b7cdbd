package schedule

import (
	"context"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"gorm.io/datatypes"
)

type Repository interface {
	ListRules(ctx context.Context, mechanicID int64) ([]domain.WeeklyAvailabilityRule, error)
	CreateRule(ctx context.Context, rule *domain.WeeklyAvailabilityRule) error
	DeleteRule(ctx context.Context, mechanicID, ruleID int64) error
	ListTimeOff(ctx context.Context, mechanicID int64) ([]domain.TimeOffPeriod, error)
	CreateTimeOff(ctx context.Context, period *domain.TimeOffPeriod) error
}

// Service manages a mechanic's recurring schedule and time off. Rule
// invariants (start < end, valid weekday) are enforced here; overlap
// between rules is allowed since the evaluator unions them anyway.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRules(ctx context.Context, mechanicID int64) ([]domain.WeeklyAvailabilityRule, error) {
	return s.repo.ListRules(ctx, mechanicID)
}

func (s *Service) AddRule(ctx context.Context, mechanicID int64, req AddRuleRequest) (*domain.WeeklyAvailabilityRule, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, ErrValidation
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	rule := &domain.WeeklyAvailabilityRule{
		MechanicID: mechanicID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := s.repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) RemoveRule(ctx context.Context, mechanicID, ruleID int64) error {
	return s.repo.DeleteRule(ctx, mechanicID, ruleID)
}

func (s *Service) ListTimeOff(ctx context.Context, mechanicID int64) ([]domain.TimeOffPeriod, error) {
	return s.repo.ListTimeOff(ctx, mechanicID)
}

func (s *Service) AddTimeOff(ctx context.Context, mechanicID int64, req AddTimeOffRequest) (*domain.TimeOffPeriod, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrValidation
	}
	if end.Before(start) {
		return nil, ErrValidation
	}

	period := &domain.TimeOffPeriod{
		MechanicID: mechanicID,
		StartDate:  datatypes.Date(start),
		EndDate:    datatypes.Date(end),
		Reason:     req.Reason,
	}
	if err := s.repo.CreateTimeOff(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}
