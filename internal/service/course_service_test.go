package service

import (
	"context"
	"net/http"
	"testing"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

func newCourseFixture() (*CourseService, *fakeCourseStore, *fakeExamStore) {
	courses := newFakeCourseStore()
	exams := newFakeExamStore()
	return NewCourseService(courses, exams), courses, exams
}

func validCourse() *models.Course {
	return &models.Course{
		Title:      "Terraform 101",
		Category:   "DevOps",
		Difficulty: 1,
		Modules: []models.Module{
			{Title: "Basics", Content: []models.ContentItem{
				{Type: models.ContentWrittenLesson, Title: "State"},
				{Type: models.ContentQuiz, Title: "Check", Questions: []models.QuizQuestion{
					{
						Question:        "?",
						Options:         []models.Option{{ID: "a", Text: "yes"}, {ID: "b", Text: "no"}},
						CorrectOptionID: "a",
					},
				}},
			}},
		},
	}
}

func TestCreateCourse(t *testing.T) {
	svc, _, _ := newCourseFixture()

	created, err := svc.CreateCourse(context.Background(), validCourse())
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if !created.IsActive {
		t.Fatal("new courses must be active")
	}
	for _, m := range created.Modules {
		for _, item := range m.Content {
			if item.ID == "" {
				t.Fatal("content items must get ids assigned")
			}
		}
	}
}

func TestCreateCourseValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Course)
		status int
	}{
		{"missing title", func(c *models.Course) { c.Title = "" }, http.StatusBadRequest},
		{"difficulty too high", func(c *models.Course) { c.Difficulty = 4 }, http.StatusBadRequest},
		{"correct option not among options", func(c *models.Course) {
			c.Modules[0].Content[1].Questions[0].CorrectOptionID = "zzz"
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newCourseFixture()
			course := validCourse()
			tt.mutate(course)
			_, err := svc.CreateCourse(context.Background(), course)
			if !apperr.Status(err, tt.status) {
				t.Fatalf("expected status %d, got %v", tt.status, err)
			}
		})
	}
}

func TestCreateCourseDuplicateTitle(t *testing.T) {
	svc, _, _ := newCourseFixture()
	ctx := context.Background()

	if _, err := svc.CreateCourse(ctx, validCourse()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateCourse(ctx, validCourse())
	if !apperr.Status(err, http.StatusConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestCreateExam(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	ctx := context.Background()
	courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "With exam", HaveExam: true}

	exam := &models.Exam{Title: "Final", Questions: []models.QuizQuestion{
		{Question: "?", Options: []models.Option{{ID: "a"}, {ID: "b"}}, CorrectOptionID: "b"},
	}}
	created, err := svc.CreateExam(ctx, "course-1", exam)
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if created.CourseID != "course-1" {
		t.Fatalf("exam not bound to course: %+v", created)
	}
	if courses.courses["course-1"].ExamID == "" {
		t.Fatal("course was not linked to its exam")
	}

	_, err = svc.CreateExam(ctx, "course-1", exam)
	if !apperr.Status(err, http.StatusConflict) {
		t.Fatalf("second exam: expected Conflict, got %v", err)
	}
}

func TestCreateExamOnCourseWithoutExam(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "No exam"}

	_, err := svc.CreateExam(context.Background(), "course-1", &models.Exam{Title: "Final"})
	if !apperr.Status(err, http.StatusBadRequest) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestDeleteCourseRemovesExam(t *testing.T) {
	svc, courses, exams := newCourseFixture()
	ctx := context.Background()
	courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Doomed", HaveExam: true}
	exams.exams["course-1"] = &models.Exam{ID: "exam-1", CourseID: "course-1"}

	if err := svc.DeleteCourse(ctx, "course-1"); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if _, ok := courses.courses["course-1"]; ok {
		t.Fatal("course still present")
	}
	if _, ok := exams.exams["course-1"]; ok {
		t.Fatal("exam still present")
	}
}

func TestListDefaultsPagination(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	courses.courses["course-1"] = &models.Course{ID: "course-1", IsActive: true, Title: "A"}
	courses.courses["course-2"] = &models.Course{ID: "course-2", IsActive: false, Title: "B"}

	list, err := svc.List(context.Background(), CourseFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Page != 1 || list.Limit != 20 {
		t.Fatalf("expected default pagination, got %+v", list)
	}
	// Inactive courses are hidden.
	if list.Total != 1 || len(list.Courses) != 1 {
		t.Fatalf("expected 1 active course, got %+v", list)
	}
}

func TestGetLesson(t *testing.T) {
	svc, courses, _ := newCourseFixture()
	ctx := context.Background()
	courses.courses["course-1"] = &models.Course{
		ID: "course-1", IsActive: true, Title: "A",
		Modules: []models.Module{{Content: []models.ContentItem{{ID: "lesson-1", Title: "Intro"}}}},
	}

	lesson, err := svc.GetLesson(ctx, "course-1", "lesson-1")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if lesson.Title != "Intro" {
		t.Fatalf("unexpected lesson: %+v", lesson)
	}

	if _, err := svc.GetLesson(ctx, "course-1", "missing"); !apperr.Status(err, http.StatusNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
