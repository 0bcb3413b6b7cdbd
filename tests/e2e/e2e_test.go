package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/database"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/middleware"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/availability"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/checkout"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/reservation"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/modules/schedule"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/notification"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/clock"
	jwtsvc "github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/jwt"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Wednesday morning; every time below is relative to this instant.
var testNow = time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	mechanicRepo := repository.NewMechanicRepository(db)
	workshopRepo := repository.NewWorkshopRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	clk := clock.Fixed{T: testNow}
	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	availabilityService := availability.NewService(mechanicRepo, workshopRepo, sessionRepo, reservationRepo, clk)
	availabilityHandler := availability.NewHandler(availabilityService)

	reservationService := reservation.NewService(reservationRepo, availabilityService, nil, clk)
	reservationHandler := reservation.NewHandler(reservationService)

	checkoutService := checkout.NewService(sessionRepo, reservationService, nil, notification.NewStore(db))
	checkoutHandler := checkout.NewHandler(checkoutService)

	scheduleService := schedule.NewService(mechanicRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	availabilityHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		reservationHandler.RegisterRoutes(protected)
		checkoutHandler.RegisterRoutes(protected)
		scheduleHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
	}
}

// seedMechanics creates one mechanic per modality, weekday schedules
// 09:00-17:00, and workshop hours with a lunch break for the affiliated
// one. IDs: 1 virtual, 2 independent, 3 affiliated.
func (s *E2ETestSuite) seedMechanics(t *testing.T) {
	workshop := &domain.Workshop{Name: "Precision Auto Works", City: "Austin"}
	require.NoError(t, s.db.Create(workshop).Error)

	mechanics := []domain.Mechanic{
		{ID: 1, DisplayName: "Remote Ray", MechanicType: domain.MechanicVirtualOnly},
		{ID: 2, DisplayName: "Indie Ines", MechanicType: domain.MechanicIndependentWorkshop},
		{ID: 3, DisplayName: "Shop Sam", MechanicType: domain.MechanicWorkshopAffiliated, WorkshopID: &workshop.ID},
	}
	require.NoError(t, s.db.Create(&mechanics).Error)

	for _, m := range mechanics {
		for day := 1; day <= 5; day++ {
			rule := domain.WeeklyAvailabilityRule{
				MechanicID: m.ID,
				DayOfWeek:  day,
				StartTime:  "09:00",
				EndTime:    "17:00",
			}
			require.NoError(t, s.db.Create(&rule).Error)
		}
	}

	breakStart, breakEnd := "12:00", "13:00"
	for day := 1; day <= 6; day++ {
		hours := domain.WorkshopHours{
			WorkshopID: workshop.ID,
			DayOfWeek:  day,
			OpenTime:   "09:00",
			CloseTime:  "18:00",
			BreakStart: &breakStart,
			BreakEnd:   &breakEnd,
		}
		require.NoError(t, s.db.Create(&hours).Error)
	}
	sunday := domain.WorkshopHours{WorkshopID: workshop.ID, DayOfWeek: 0, IsClosed: true}
	require.NoError(t, s.db.Create(&sunday).Error)
}

func (s *E2ETestSuite) tokenFor(t *testing.T, userID int64, role string) string {
	token, err := s.jwtService.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// Thursday 10:00, well past the advance-notice cutoff.
func slotTomorrow() (time.Time, time.Time) {
	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	return start, start.Add(30 * time.Minute)
}

func availabilityPath(mechanicID int64, start, end time.Time) string {
	return fmt.Sprintf("/api/v1/mechanics/%d/availability?start=%s&end=%s",
		mechanicID, start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func TestFlow1_AvailabilityLookup(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedMechanics(t)

	start, end := slotTomorrow()

	t.Run("virtual mechanic open window", func(t *testing.T) {
		w := suite.makeRequest("GET", availabilityPath(1, start, end), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, true, resp.Data["available"])
	})

	t.Run("too soon fails advance notice", func(t *testing.T) {
		soon := testNow.Add(30 * time.Minute)
		w := suite.makeRequest("GET", availabilityPath(1, soon, soon.Add(30*time.Minute)), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, availability.ReasonAdvanceNotice, resp.Data["reason"])
	})

	t.Run("workshop mechanic blocked during break", func(t *testing.T) {
		noon := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
		w := suite.makeRequest("GET", availabilityPath(3, noon, noon.Add(30*time.Minute)), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, availability.ReasonWorkshopBreak, resp.Data["reason"])
	})

	t.Run("workshop mechanic blocked on Sunday", func(t *testing.T) {
		sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
		w := suite.makeRequest("GET", availabilityPath(3, sunday, sunday.Add(30*time.Minute)), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, availability.ReasonWorkshopClosed, resp.Data["reason"])
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		w := suite.makeRequest("GET", availabilityPath(99, start, end), nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, availability.ReasonMechanicMissing, resp.Data["reason"])
	})

	t.Run("slot grid for a day", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/mechanics/1/slots?date=2026-03-12", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		slots, ok := resp.Data["slots"].([]interface{})
		require.True(t, ok)
		assert.Len(t, slots, 22)
	})
}

func TestFlow2_ReserveAndCheckout(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedMechanics(t)

	customerToken := suite.tokenFor(t, 10, "customer")
	start, end := slotTomorrow()

	reserveBody := map[string]interface{}{
		"mechanic_id":  1,
		"start_time":   start.Format(time.RFC3339),
		"end_time":     end.Format(time.RFC3339),
		"session_type": "video",
	}

	var reservationID string

	t.Run("POST /reservations", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", reserveBody, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := parseResponse(t, w)
		require.True(t, resp.Success)
		res := resp.Data["reservation"].(map[string]interface{})
		reservationID = res["id"].(string)
		assert.Equal(t, "reserved", res["status"])
		assert.NotEmpty(t, res["expires_at"])
	})

	t.Run("POST /reservations requires auth", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", reserveBody, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("competing hold on the same slot is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/reservations", reserveBody, customerToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		// The availability pre-check sees the live hold first.
		assert.Equal(t, "NOT_AVAILABLE", resp.Error.Code)
	})

	t.Run("adjacent slot is still free", func(t *testing.T) {
		adjacent := map[string]interface{}{
			"mechanic_id":  1,
			"start_time":   end.Format(time.RFC3339),
			"end_time":     end.Add(30 * time.Minute).Format(time.RFC3339),
			"session_type": "video",
		}
		w := suite.makeRequest("POST", "/api/v1/reservations", adjacent, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := parseResponse(t, w)
		res := resp.Data["reservation"].(map[string]interface{})

		// Abort that checkout; the slot opens up again.
		w = suite.makeRequest("DELETE", "/api/v1/reservations/"+res["id"].(string), nil, customerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = suite.makeRequest("POST", "/api/v1/reservations", adjacent, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("POST /checkout/complete", func(t *testing.T) {
		checkoutBody := map[string]interface{}{
			"reservation_id": reservationID,
			"plan":           "standard",
			"payment_ref":    "pay_e2e_1",
		}

		w := suite.makeRequest("POST", "/api/v1/checkout/complete", checkoutBody, customerToken)
		assert.Equal(t, http.StatusCreated, w.Code)

		resp := parseResponse(t, w)
		require.True(t, resp.Success)
		sess := resp.Data["session"].(map[string]interface{})
		assert.Equal(t, "scheduled", sess["status"])
		assert.Equal(t, "video", sess["type"])

		w = suite.makeRequest("GET", "/api/v1/reservations/"+reservationID, nil, customerToken)
		resp = parseResponse(t, w)
		res := resp.Data["reservation"].(map[string]interface{})
		assert.Equal(t, "confirmed", res["status"])
	})

	t.Run("booking writes notifications for both sides", func(t *testing.T) {
		var rows []notification.Notification
		require.NoError(t, suite.db.Where("type = ?", notification.TypeSessionBooked).Find(&rows).Error)
		require.Len(t, rows, 2)

		users := []int64{rows[0].UserID, rows[1].UserID}
		assert.Contains(t, users, int64(10))
		assert.Contains(t, users, int64(1))
	})

	t.Run("confirmed slot shows as session conflict", func(t *testing.T) {
		w := suite.makeRequest("GET", availabilityPath(1, start, end), nil, "")
		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, availability.ReasonSessionConflict, resp.Data["reason"])
	})
}

func TestFlow3_ScheduleManagement(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedMechanics(t)

	mechanicToken := suite.tokenFor(t, 2, "mechanic")

	t.Run("POST /schedule/rules", func(t *testing.T) {
		body := map[string]interface{}{
			"day_of_week": 6,
			"start_time":  "10:00",
			"end_time":    "14:00",
		}
		w := suite.makeRequest("POST", "/api/v1/schedule/rules", body, mechanicToken)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rule with inverted window rejected", func(t *testing.T) {
		body := map[string]interface{}{
			"day_of_week": 6,
			"start_time":  "14:00",
			"end_time":    "10:00",
		}
		w := suite.makeRequest("POST", "/api/v1/schedule/rules", body, mechanicToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /schedule/rules", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/schedule/rules", nil, mechanicToken)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		rules := resp.Data["rules"].([]interface{})
		// Five seeded weekday rules plus the Saturday one just added.
		assert.Len(t, rules, 6)
	})

	t.Run("POST /schedule/time-off blocks the day", func(t *testing.T) {
		body := map[string]interface{}{
			"start_date": "2026-03-13",
			"end_date":   "2026-03-13",
			"reason":     "Parts pickup",
		}
		w := suite.makeRequest("POST", "/api/v1/schedule/time-off", body, mechanicToken)
		assert.Equal(t, http.StatusCreated, w.Code)

		friday := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)
		w = suite.makeRequest("GET", availabilityPath(2, friday, friday.Add(30*time.Minute)), nil, "")
		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
		assert.Equal(t, "Parts pickup", resp.Data["reason"])
	})

	t.Run("other days stay open", func(t *testing.T) {
		start, end := slotTomorrow()
		w := suite.makeRequest("GET", availabilityPath(2, start, end), nil, "")
		resp := parseResponse(t, w)
		assert.Equal(t, true, resp.Data["available"])
	})
}

func TestFlow4_ExpiredHoldCheckout(t *testing.T) {
	suite := setupTestSuite(t)
	suite.seedMechanics(t)

	customerToken := suite.tokenFor(t, 11, "customer")
	start, end := slotTomorrow()

	// Plant a hold that already outlived its window, as if the customer
	// stalled on the payment page past the sweep deadline.
	expired := testNow.Add(-time.Minute)
	hold := &domain.SlotReservation{
		MechanicID: 1,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.ReservationReserved,
		ExpiresAt:  &expired,
		Metadata:   datatypes.JSON(`{"session_type":"video"}`),
	}
	reservationRepo := repository.NewReservationRepository(suite.db)
	require.NoError(t, reservationRepo.Create(context.Background(), hold, testNow.Add(-20*time.Minute)))

	_, err := reservationRepo.ExpireDue(context.Background(), testNow)
	require.NoError(t, err)

	checkoutBody := map[string]interface{}{
		"reservation_id": hold.ID.String(),
		"payment_ref":    "pay_e2e_2",
	}
	w := suite.makeRequest("POST", "/api/v1/checkout/complete", checkoutBody, customerToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := parseResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RESERVATION_EXPIRED", resp.Error.Code)

	// The orphaned session must not linger as a conflict.
	wAvail := suite.makeRequest("GET", availabilityPath(1, start, end), nil, "")
	availResp := parseResponse(t, wAvail)
	assert.Equal(t, true, availResp.Data["available"])
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
