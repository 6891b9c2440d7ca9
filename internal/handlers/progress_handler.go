package handlers

import (
	"io"
	"net/http"

	"learning-service/internal/apperr"
	"learning-service/internal/middleware"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxSubmissionSize caps uploaded activity files at 10 MiB.
const maxSubmissionSize = 10 << 20

type ProgressHandler struct {
	Progress     *service.ProgressService
	Competency   *service.CompetencyService
	Logger       *zap.Logger
}

func NewProgressHandler(progress *service.ProgressService, competencies *service.CompetencyService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{Progress: progress, Competency: competencies, Logger: logger}
}

func (h *ProgressHandler) Enroll(c *gin.Context) {
	var req struct {
		EmployeeID string `json:"employeeId"`
		CourseID   string `json:"courseId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.Progress.Enroll(c.Request.Context(), middleware.CompanyID(c), req.EmployeeID, req.CourseID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "employee enrolled"})
}

func (h *ProgressHandler) MarkContentComplete(c *gin.Context) {
	status, err := h.Progress.MarkContentComplete(
		c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("contentId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ProgressHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers []service.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Progress.SubmitQuiz(
		c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("contentId"), req.Answers)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProgressHandler) SubmitPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, h.Logger, apperr.InvalidInput("a file field is required"))
		return
	}
	if fileHeader.Size > maxSubmissionSize {
		writeError(c, h.Logger, apperr.InvalidInput("file exceeds the 10MB limit"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	submission, err := h.Progress.SubmitPDF(
		c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("contentId"), data)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *ProgressHandler) SubmitExam(c *gin.Context) {
	var req struct {
		Answers []service.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Progress.SubmitExam(
		c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Answers)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProgressHandler) Competencies(c *gin.Context) {
	competencies, err := h.Competency.ForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, competencies)
}
