package handlers

import (
	"net/http"

	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ManagerHandler struct {
	Manager *service.ManagerService
	Logger  *zap.Logger
}

func NewManagerHandler(manager *service.ManagerService, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{Manager: manager, Logger: logger}
}

func (h *ManagerHandler) Dashboard(c *gin.Context) {
	data, err := h.Manager.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *ManagerHandler) Employees(c *gin.Context) {
	summaries, err := h.Manager.EmployeesSummary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ManagerHandler) EmployeeDetail(c *gin.Context) {
	detail, err := h.Manager.EmployeeDetail(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
