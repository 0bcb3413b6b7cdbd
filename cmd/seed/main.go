package main

import (
	"os"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/database"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "autodoctor.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	log.Info("cleaning old data")
	db.Exec("DELETE FROM slot_reservations")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM mechanic_time_off")
	db.Exec("DELETE FROM mechanic_availability")
	db.Exec("DELETE FROM workshop_availability")
	db.Exec("DELETE FROM mechanics")
	db.Exec("DELETE FROM workshops")

	workshop := domain.Workshop{Name: "Precision Auto Works", City: "Calgary"}
	if err := db.Create(&workshop).Error; err != nil {
		log.Fatalf("seed workshop: %v", err)
	}

	mechanics := []domain.Mechanic{
		{DisplayName: "Dana (virtual)", MechanicType: domain.MechanicVirtualOnly},
		{DisplayName: "Lee (independent)", MechanicType: domain.MechanicIndependentWorkshop},
		{DisplayName: "Sam (workshop)", MechanicType: domain.MechanicWorkshopAffiliated, WorkshopID: &workshop.ID},
	}
	for i := range mechanics {
		if err := db.Create(&mechanics[i]).Error; err != nil {
			log.Fatalf("seed mechanic: %v", err)
		}
	}

	// Weekday coverage 09:00-17:00, Sam also Saturday mornings.
	for _, m := range mechanics {
		for day := 1; day <= 5; day++ {
			rule := domain.WeeklyAvailabilityRule{
				MechanicID: m.ID,
				DayOfWeek:  day,
				StartTime:  "09:00",
				EndTime:    "17:00",
			}
			if err := db.Create(&rule).Error; err != nil {
				log.Fatalf("seed rule: %v", err)
			}
		}
	}
	db.Create(&domain.WeeklyAvailabilityRule{
		MechanicID: mechanics[2].ID, DayOfWeek: 6, StartTime: "09:00", EndTime: "12:00",
	})

	// Workshop open Mon-Sat with a lunch break, closed Sunday.
	lunchStart, lunchEnd := "12:00", "13:00"
	for day := 0; day <= 6; day++ {
		h := domain.WorkshopHours{
			WorkshopID: workshop.ID,
			DayOfWeek:  day,
			OpenTime:   "09:00",
			CloseTime:  "18:00",
			BreakStart: &lunchStart,
			BreakEnd:   &lunchEnd,
		}
		if day == 0 {
			h = domain.WorkshopHours{WorkshopID: workshop.ID, DayOfWeek: 0, IsClosed: true}
		}
		if err := db.Create(&h).Error; err != nil {
			log.Fatalf("seed workshop hours: %v", err)
		}
	}

	// Dana is away next week.
	nextMonday := nextWeekday(time.Now(), time.Monday)
	db.Create(&domain.TimeOffPeriod{
		MechanicID: mechanics[0].ID,
		StartDate:  datatypes.Date(nextMonday),
		EndDate:    datatypes.Date(nextMonday.AddDate(0, 0, 4)),
		Reason:     "Vacation",
	})

	// One scheduled session tomorrow for conflict demos.
	tomorrow10 := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 10, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	db.Create(&domain.Session{
		MechanicID:     mechanics[1].ID,
		CustomerID:     1001,
		Type:           domain.SessionTypeVideo,
		Plan:           "standard",
		Status:         domain.SessionScheduled,
		ScheduledStart: tomorrow10,
		ScheduledEnd:   tomorrow10.Add(30 * time.Minute),
	})

	log.Info("seed completed")
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	d := from
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
