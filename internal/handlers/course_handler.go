package handlers

import (
	"net/http"
	"strconv"
	"time"

	"learning-service/internal/models"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CourseHandler struct {
	Courses *service.CourseService
	Logger  *zap.Logger
}

func NewCourseHandler(courses *service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{Courses: courses, Logger: logger}
}

func (h *CourseHandler) List(c *gin.Context) {
	difficulty, _ := strconv.Atoi(c.Query("difficulty"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	list, err := h.Courses.List(c.Request.Context(), service.CourseFilter{
		Category:   c.Query("category"),
		Difficulty: difficulty,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) GetLesson(c *gin.Context) {
	lesson, err := h.Courses.GetLesson(c.Request.Context(), c.Param("id"), c.Param("contentId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// Inbound shapes for course and exam creation. Answer keys arrive here and
// only here; stored questions never serialize them back out.

type questionInput struct {
	Question        string          `json:"question"`
	Options         []models.Option `json:"options"`
	CorrectOptionID string          `json:"correctOptionId"`
}

type contentInput struct {
	Type        int             `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Value       string          `json:"value"`
	Questions   []questionInput `json:"questions"`
	Deadline    *time.Time      `json:"deadline"`
}

type moduleInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     []contentInput `json:"content"`
}

type courseInput struct {
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Difficulty  int           `json:"difficulty"`
	Category    string        `json:"category"`
	Duration    string        `json:"duration"`
	HaveExam    bool          `json:"haveExam"`
	Modules     []moduleInput `json:"modules"`
}

func toQuestions(inputs []questionInput) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, 0, len(inputs))
	for _, q := range inputs {
		questions = append(questions, models.QuizQuestion{
			Question:        q.Question,
			Options:         q.Options,
			CorrectOptionID: q.CorrectOptionID,
		})
	}
	return questions
}

func (in *courseInput) toCourse() *models.Course {
	course := &models.Course{
		Title:       in.Title,
		Image:       in.Image,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Category:    in.Category,
		Duration:    in.Duration,
		HaveExam:    in.HaveExam,
	}
	for _, m := range in.Modules {
		module := models.Module{Title: m.Title, Description: m.Description}
		for _, item := range m.Content {
			module.Content = append(module.Content, models.ContentItem{
				Type:        item.Type,
				Title:       item.Title,
				Description: item.Description,
				Value:       item.Value,
				Questions:   toQuestions(item.Questions),
				Deadline:    item.Deadline,
			})
		}
		course.Modules = append(course.Modules, module)
	}
	return course
}

func (h *CourseHandler) Create(c *gin.Context) {
	var input courseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Courses.CreateCourse(c.Request.Context(), input.toCourse())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Courses.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

func (h *CourseHandler) CreateExam(c *gin.Context) {
	var input struct {
		Title     string          `json:"title"`
		Questions []questionInput `json:"questions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exam := &models.Exam{Title: input.Title, Questions: toQuestions(input.Questions)}
	created, err := h.Courses.CreateExam(c.Request.Context(), c.Param("id"), exam)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
