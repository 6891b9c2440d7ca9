package service

import (
	"context"
	"fmt"
	"net/http"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"github.com/google/uuid"
)

// CourseList is a paginated catalog listing.
type CourseList struct {
	Courses []models.Course `json:"courses"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// CourseService owns admin CRUD over the catalog and read access for
// everyone else.
type CourseService struct {
	Courses CourseStore
	Exams   ExamStore
}

func NewCourseService(courses CourseStore, exams ExamStore) *CourseService {
	return &CourseService{Courses: courses, Exams: exams}
}

// CreateCourse validates and stores a new course. Content items get stable
// ids assigned here; those ids key completion tracking for the lifetime of
// the course.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course.Title == "" {
		return nil, apperr.InvalidInput("course title is required")
	}
	if course.Difficulty < 1 || course.Difficulty > 3 {
		return nil, apperr.InvalidInput("difficulty must be between 1 and 3")
	}

	existing, err := s.Courses.FindByTitle(ctx, course.Title)
	if err != nil && !apperr.Status(err, http.StatusNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("a course with this title already exists")
	}

	for mi := range course.Modules {
		for ci := range course.Modules[mi].Content {
			item := &course.Modules[mi].Content[ci]
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			if err := validateQuestions(item); err != nil {
				return nil, err
			}
		}
	}

	course.IsActive = true
	if err := s.Courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// validateQuestions enforces that each quiz question's correct option
// references one of its own options.
func validateQuestions(item *models.ContentItem) error {
	if item.Type != models.ContentQuiz {
		return nil
	}
	for qi := range item.Questions {
		q := &item.Questions[qi]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if !q.HasOption(q.CorrectOptionID) {
			return apperr.InvalidInput(
				fmt.Sprintf("question %q: correct option %q is not one of its options", q.ID, q.CorrectOptionID))
		}
	}
	return nil
}

// CreateExam attaches the final exam to a course configured to have one.
func (s *CourseService) CreateExam(ctx context.Context, courseID string, exam *models.Exam) (*models.Exam, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.HaveExam {
		return nil, apperr.InvalidInput("this course is not configured to have an exam")
	}
	if course.ExamID != "" {
		return nil, apperr.Conflict("this course already has an exam")
	}
	for qi := range exam.Questions {
		q := &exam.Questions[qi]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if !q.HasOption(q.CorrectOptionID) {
			return nil, apperr.InvalidInput(
				fmt.Sprintf("question %q: correct option %q is not one of its options", q.ID, q.CorrectOptionID))
		}
	}

	exam.CourseID = courseID
	if err := s.Exams.Create(ctx, exam); err != nil {
		return nil, err
	}
	if err := s.Courses.SetExamID(ctx, courseID, exam.ID); err != nil {
		return nil, err
	}
	return exam, nil
}

// DeleteCourse removes the course and its exam.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID string) error {
	if err := s.Exams.DeleteByCourse(ctx, courseID); err != nil {
		return err
	}
	return s.Courses.Delete(ctx, courseID)
}

// List returns the filtered, paginated active catalog.
func (s *CourseService) List(ctx context.Context, filter CourseFilter) (*CourseList, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	courses, total, err := s.Courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &CourseList{Courses: courses, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Get returns one course with its full module tree.
func (s *CourseService) Get(ctx context.Context, courseID string) (*models.Course, error) {
	return s.Courses.FindByID(ctx, courseID)
}

// GetLesson returns a single content item of a course.
func (s *CourseService) GetLesson(ctx context.Context, courseID, contentID string) (*models.ContentItem, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	item := course.FindContent(contentID)
	if item == nil {
		return nil, apperr.NotFound("lesson not found in this course")
	}
	return item, nil
}
