package handlers

import (
	"net/http"
	"time"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	Calendar *service.CalendarService
	Logger   *zap.Logger
}

func NewCalendarHandler(calendar *service.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Calendar: calendar, Logger: logger}
}

func (h *CalendarHandler) AddReminder(c *gin.Context) {
	var req struct {
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Calendar.AddReminder(c.Request.Context(), middleware.UserID(c), req.Description, req.Date)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CalendarHandler) Events(c *gin.Context) {
	events, err := h.Calendar.Events(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *CalendarHandler) UpcomingWeek(c *gin.Context) {
	events, err := h.Calendar.UpcomingWeek(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
