package handlers

import (
	"net/http"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HomeHandler struct {
	Home   *service.HomeService
	Logger *zap.Logger
}

func NewHomeHandler(home *service.HomeService, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{Home: home, Logger: logger}
}

func (h *HomeHandler) PersonalProgress(c *gin.Context) {
	progress, err := h.Home.PersonalProgress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *HomeHandler) CoursesInProgress(c *gin.Context) {
	cards, err := h.Home.CoursesInProgress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
