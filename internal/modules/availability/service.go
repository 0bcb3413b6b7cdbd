package availability

import (
	"context"
	"sort"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/clock"

	log "github.com/sirupsen/logrus"
)

const (
	// Customers must book at least this far ahead.
	AdvanceNotice = 2 * time.Hour

	// Picker grid bounds and default cell size.
	gridStartHour       = 9
	gridEndHour         = 20
	DefaultSlotDuration = 30 * time.Minute
)

const (
	ReasonAdvanceNotice   = "Please book at least 2 hours in advance"
	ReasonMechanicMissing = "Mechanic not found"
	ReasonSessionConflict = "Mechanic has another session at this time"
	ReasonSlotOnHold      = "Time slot is on hold for another customer"
	ReasonOffSchedule     = "Mechanic not available at this time"
	ReasonWorkshopClosed  = "Workshop closed on this day"
	ReasonOutsideHours    = "Outside workshop operating hours"
	ReasonWorkshopBreak   = "Workshop break time"
	ReasonCheckFailed     = "Error checking availability"
)

type Service struct {
	mechanics    MechanicRepository
	workshops    WorkshopRepository
	sessions     SessionRepository
	reservations ReservationConflicts
	clock        clock.Clock
}

func NewService(
	mechanics MechanicRepository,
	workshops WorkshopRepository,
	sessions SessionRepository,
	reservations ReservationConflicts,
	clk clock.Clock,
) *Service {
	return &Service{
		mechanics:    mechanics,
		workshops:    workshops,
		sessions:     sessions,
		reservations: reservations,
		clock:        clk,
	}
}

// IsAvailable answers whether the mechanic is bookable for [start, end).
// Rules short-circuit in order: advance notice, mechanic lookup, time-off,
// session conflict, checkout hold, then the modality-specific schedule
// checks. Infrastructure failures degrade to an unavailable verdict; this
// check is advisory to the UI and must fail closed, not crash it.
func (s *Service) IsAvailable(ctx context.Context, mechanicID int64, start, end time.Time, sessionType domain.SessionType) domain.AvailabilityResult {
	now := s.clock.Now()

	if start.Before(now.Add(AdvanceNotice)) {
		return domain.Unavailable(ReasonAdvanceNotice)
	}

	mech, err := s.mechanics.GetByID(ctx, mechanicID)
	if err != nil {
		return s.degrade("mechanic lookup", err)
	}
	if mech == nil {
		return domain.Unavailable(ReasonMechanicMissing)
	}

	if res := s.checkTimeOff(ctx, mechanicID, start, end); !res.Available {
		return res
	}

	conflict, err := s.sessions.HasConflict(ctx, mechanicID, start, end)
	if err != nil {
		return s.degrade("session conflict check", err)
	}
	if conflict {
		return domain.Unavailable(ReasonSessionConflict)
	}

	held, err := s.reservations.HasBlockingHold(ctx, mechanicID, start, end, now)
	if err != nil {
		return s.degrade("hold conflict check", err)
	}
	if held {
		return domain.Unavailable(ReasonSlotOnHold)
	}

	switch mech.MechanicType {
	case domain.MechanicVirtualOnly, domain.MechanicIndependentWorkshop:
		return s.checkPersonalSchedule(ctx, mechanicID, start, end)
	case domain.MechanicWorkshopAffiliated:
		if res := s.checkWorkshopHours(ctx, mech.WorkshopID, start, end); !res.Available {
			return res
		}
		return s.checkPersonalSchedule(ctx, mechanicID, start, end)
	}

	return domain.Available()
}

// GetAvailableSlots renders the picker grid for one calendar day: fixed
// duration windows between 09:00 and 20:00, each carrying the verdict.
func (s *Service) GetAvailableSlots(ctx context.Context, mechanicID int64, date time.Time, sessionType domain.SessionType, slotDuration time.Duration) []domain.TimeSlot {
	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), gridStartHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), gridEndHour, 0, 0, 0, date.Location())

	slots := make([]domain.TimeSlot, 0)
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(slotDuration) {
		slotEnd := cur.Add(slotDuration)
		verdict := s.IsAvailable(ctx, mechanicID, cur, slotEnd, sessionType)
		slots = append(slots, domain.TimeSlot{
			Start:     cur,
			End:       slotEnd,
			Available: verdict.Available,
			Reason:    verdict.Reason,
		})
	}
	return slots
}

// checkTimeOff blocks the whole calendar day when any time-off period
// touches the window's date span.
func (s *Service) checkTimeOff(ctx context.Context, mechanicID int64, start, end time.Time) domain.AvailabilityResult {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	periods, err := s.mechanics.GetTimeOffOverlapping(ctx, mechanicID, startDay, endDay)
	if err != nil {
		return s.degrade("time-off check", err)
	}
	if len(periods) > 0 {
		reason := periods[0].Reason
		if reason == "" {
			reason = "Mechanic is unavailable"
		}
		return domain.Unavailable(reason)
	}
	return domain.Available()
}

// checkPersonalSchedule requires the window's time-of-day range to fall
// entirely inside the union of the mechanic's recurring windows for that
// weekday.
func (s *Service) checkPersonalSchedule(ctx context.Context, mechanicID int64, start, end time.Time) domain.AvailabilityResult {
	startTOD, endTOD, ok := timeOfDayRange(start, end)
	if !ok {
		return domain.Unavailable(ReasonOffSchedule)
	}

	rules, err := s.mechanics.GetRulesForDay(ctx, mechanicID, int(start.Weekday()))
	if err != nil {
		return s.degrade("schedule lookup", err)
	}
	if !rangeCovered(rules, startTOD, endTOD) {
		return domain.Unavailable(ReasonOffSchedule)
	}
	return domain.Available()
}

// checkWorkshopHours applies the workshop's operating-hours row for the
// weekday: closed days reject outright, the window must sit inside
// [open, close), and any intersection with the break window rejects.
func (s *Service) checkWorkshopHours(ctx context.Context, workshopID *int64, start, end time.Time) domain.AvailabilityResult {
	if workshopID == nil {
		// Affiliated mechanic without a workshop record: fall through to
		// the personal schedule alone.
		return domain.Available()
	}

	hours, err := s.workshops.GetHoursForDay(ctx, *workshopID, int(start.Weekday()))
	if err != nil {
		return s.degrade("workshop hours lookup", err)
	}
	if hours == nil || hours.IsClosed || hours.OpenTime == "" || hours.CloseTime == "" {
		return domain.Unavailable(ReasonWorkshopClosed)
	}

	startTOD, endTOD, ok := timeOfDayRange(start, end)
	if !ok {
		return domain.Unavailable(ReasonOutsideHours)
	}
	if startTOD < hours.OpenTime || endTOD > hours.CloseTime {
		return domain.Unavailable(ReasonOutsideHours)
	}

	if hours.BreakStart != nil && hours.BreakEnd != nil {
		if startTOD < *hours.BreakEnd && endTOD > *hours.BreakStart {
			return domain.Unavailable(ReasonWorkshopBreak)
		}
	}
	return domain.Available()
}

func (s *Service) degrade(op string, err error) domain.AvailabilityResult {
	log.WithError(err).Warnf("availability: %s failed, answering unavailable", op)
	return domain.Unavailable(ReasonCheckFailed)
}

// truncateToDay normalizes an instant to midnight UTC of its calendar
// day, matching how time-off bounds are stored.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// timeOfDayRange renders both instants as zero-padded "HH:MM" so they can
// be compared lexicographically against schedule columns. Windows that
// cross midnight are not bookable.
func timeOfDayRange(start, end time.Time) (string, string, bool) {
	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	if !sameDay {
		// A window ending exactly at the next midnight still counts as
		// intra-day; render it as 24:00 so containment checks work.
		next := start.AddDate(0, 0, 1)
		if end.Year() == next.Year() && end.YearDay() == next.YearDay() &&
			end.Hour() == 0 && end.Minute() == 0 {
			return start.Format("15:04"), "24:00", true
		}
		return "", "", false
	}
	return start.Format("15:04"), end.Format("15:04"), true
}

// rangeCovered checks whether [startTOD, endTOD) lies inside the union of
// the rule windows. Rules may abut or overlap; a single gap fails.
func rangeCovered(rules []domain.WeeklyAvailabilityRule, startTOD, endTOD string) bool {
	if len(rules) == 0 {
		return false
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].StartTime < rules[j].StartTime })

	cursor := startTOD
	for _, r := range rules {
		if r.EndTime <= cursor {
			continue
		}
		if r.StartTime > cursor {
			return false
		}
		if r.EndTime > cursor {
			cursor = r.EndTime
		}
		if cursor >= endTOD {
			return true
		}
	}
	return cursor >= endTOD
}
