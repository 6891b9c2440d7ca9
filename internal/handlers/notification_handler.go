package handlers

import (
	"net/http"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Notifications *service.NotificationService
	Logger        *zap.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications, Logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.Notifications.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}
