package main

import (
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/config"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/database"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/middleware"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/availability"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/checkout"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/reservation"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/schedule"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/slotfeed"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/notification"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/payment"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/clock"
	jwtsvc "github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/jwt"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	mechanicRepo := repository.NewMechanicRepository(db)
	workshopRepo := repository.NewWorkshopRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	clk := clock.System()
	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	hub := slotfeed.NewHub()
	feedHandler := slotfeed.NewHandler(hub)

	availabilityService := availability.NewService(mechanicRepo, workshopRepo, sessionRepo, reservationRepo, clk)
	availabilityHandler := availability.NewHandler(availabilityService)

	reservationService := reservation.NewService(reservationRepo, availabilityService, hub, clk)
	reservationHandler := reservation.NewHandler(reservationService)

	checkoutService := checkout.NewService(sessionRepo, reservationService, payment.NewReconcileGateway(), notification.NewStore(db))
	checkoutHandler := checkout.NewHandler(checkoutService)

	scheduleService := schedule.NewService(mechanicRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public: picker grid and realtime slot feed
		availabilityHandler.RegisterRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			reservationHandler.RegisterRoutes(protected)
			checkoutHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
		}
	}

	log.WithField("addr", cfg.Addr).Info("starting api")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
