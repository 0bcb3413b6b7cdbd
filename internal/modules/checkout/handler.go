package checkout

import (
	"errors"
	"net/http"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/complete", h.FinalizeCheckout)
}

// FinalizeCheckout is called by the payment webhook handler once funds
// are captured.
func (h *Handler) FinalizeCheckout(c *gin.Context) {
	var req FinalizeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	customerID := c.GetInt64("user_id")
	if customerID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing caller identity")
		return
	}

	sess, err := h.service.FinalizeCheckout(c.Request.Context(), FinalizeParams{
		ReservationID: reservationID,
		CustomerID:    customerID,
		Plan:          req.Plan,
		PaymentRef:    req.PaymentRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case errors.Is(err, ErrActiveSessionExists):
			response.Error(c, http.StatusConflict, "ACTIVE_SESSION_EXISTS", "You already have an active session")
		case errors.Is(err, ErrReservationGone):
			response.Error(c, http.StatusConflict, "RESERVATION_EXPIRED",
				"Your slot hold expired before payment completed. The payment will be refunded.")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to finalize booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session": gin.H{
			"id":              sess.ID,
			"type":            sess.Type,
			"status":          sess.Status,
			"scheduled_start": sess.ScheduledStart,
			"scheduled_end":   sess.ScheduledEnd,
		},
	})
}
