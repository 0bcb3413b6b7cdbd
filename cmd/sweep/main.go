package main

import (
	"context"
	"os"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/database"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/clock"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Janitor for stale checkout holds. Cron runs this every 5 minutes; the
// sweep itself is idempotent, so overlapping runs are harmless.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	reservations := repository.NewReservationRepository(db)
	count, err := reservations.ExpireDue(context.Background(), clock.System().Now())
	if err != nil {
		log.Fatalf("expiry sweep failed: %v", err)
	}

	log.WithField("expired", count).Info("expiry sweep completed")
}
