package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/domain"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/mechanics/:id/availability", h.CheckAvailability)
	rg.GET("/mechanics/:id/slots", h.GetSlots)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	mechanicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid mechanic id")
		return
	}

	var q CheckAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end are required")
		return
	}

	start, err := time.Parse(time.RFC3339, q.Start)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, q.End)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be RFC 3339")
		return
	}
	if !end.After(start) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be after start")
		return
	}

	verdict := h.service.IsAvailable(c.Request.Context(), mechanicID, start, end, domain.SessionType(q.SessionType))
	response.Success(c, http.StatusOK, verdict)
}

func (h *Handler) GetSlots(c *gin.Context) {
	mechanicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid mechanic id")
		return
	}

	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required")
		return
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	slots := h.service.GetAvailableSlots(
		c.Request.Context(),
		mechanicID,
		date,
		domain.SessionType(q.SessionType),
		time.Duration(q.Duration)*time.Minute,
	)

	response.Success(c, http.StatusOK, SlotsResponse{
		MechanicID: mechanicID,
		Date:       q.Date,
		Slots:      slots,
	})
}
