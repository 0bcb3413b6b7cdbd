package database

import (
	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/notification"

	"gorm.io/gorm"
)

// Migrate creates the schema. On Postgres it additionally installs the
// range-exclusion constraint on slot_reservations. That constraint is the
// load-bearing piece: application-level check-then-insert cannot arbitrate
// two concurrent checkouts for the same slot, the database can. Do not
// remove it in favour of the advisory pre-checks in the service layer.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Workshop{},
		&domain.Mechanic{},
		&domain.WeeklyAvailabilityRule{},
		&domain.TimeOffPeriod{},
		&domain.WorkshopHours{},
		&domain.Session{},
		&domain.SlotReservation{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		// SQLite has no exclusion constraints; the repository's
		// in-transaction overlap check is the only guard there.
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'slot_reservations_no_overlap'
    ) THEN
        ALTER TABLE slot_reservations
            ADD CONSTRAINT slot_reservations_no_overlap
            EXCLUDE USING gist (
                mechanic_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            )
            WHERE (status IN ('reserved', 'confirmed'));
    END IF;
END
$$`).Error
}
