package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/response"
	"github.com/faizrhashmi/theautodoctor-sub010/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects to be mounted behind auth middleware; the
// mechanic id comes from the caller identity, not the URL.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/rules", h.ListRules)
	rg.POST("/schedule/rules", h.AddRule)
	rg.DELETE("/schedule/rules/:id", h.RemoveRule)
	rg.GET("/schedule/time-off", h.ListTimeOff)
	rg.POST("/schedule/time-off", h.AddTimeOff)
}

func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load schedule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

func (h *Handler) AddRule(c *gin.Context) {
	var req AddRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule rule", details)
		return
	}

	rule, err := h.service.AddRule(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rule start must be before end")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add schedule rule")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

func (h *Handler) RemoveRule(c *gin.Context) {
	ruleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rule id")
		return
	}
	if err := h.service.RemoveRule(c.Request.Context(), c.GetInt64("user_id"), ruleID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove schedule rule")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTimeOff(c *gin.Context) {
	periods, err := h.service.ListTimeOff(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load time off")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"time_off": periods})
}

func (h *Handler) AddTimeOff(c *gin.Context) {
	var req AddTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid time-off period", details)
		return
	}

	period, err := h.service.AddTimeOff(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Time-off start must not be after end")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add time off")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"time_off": period})
}
