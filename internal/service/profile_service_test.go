package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

func newProfileFixture() (*ProfileService, *fakeUserStore, *fakeObjectStore) {
	user := &models.User{
		ID: "user-1", Name: "Ana", Email: "ana@acme.test", Role: models.RoleEmployee,
		Interests: []string{"devops"},
		CompletedCourses: []models.CompletedCourse{
			{CourseID: "course-1", FinalScore: 85, CompletedAt: time.Now()},
		},
		ExamResults: []models.ExamResult{
			{ExamID: "exam-1", Score: 80},
			{ExamID: "exam-2", Score: 91},
		},
	}
	courses := newFakeCourseStore(&models.Course{ID: "course-1", Title: "Docker", Category: "DevOps"})
	objects := newFakeObjectStore()
	users := newFakeUserStore(user)
	svc := NewProfileService(users, courses, objects, "avatars", zap.NewNop())
	return svc, users, objects
}

func TestProfileGet(t *testing.T) {
	svc, _, _ := newProfileFixture()

	profile, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(profile.CompletedCourses) != 1 || profile.CompletedCourses[0].Title != "Docker" {
		t.Fatalf("unexpected completed courses: %+v", profile.CompletedCourses)
	}
	// (80 + 91) / 2 = 85.5
	if profile.AverageTest != 85.5 {
		t.Fatalf("expected averageTest 85.5, got %v", profile.AverageTest)
	}
}

func TestProfileUpdateInterests(t *testing.T) {
	svc, users, _ := newProfileFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, "user-1", ProfileUpdate{
		Interests: []string{"a", "b", "c", "d", "e", "f"},
	})
	if !apperr.Status(err, http.StatusBadRequest) {
		t.Fatalf("six interests: expected InvalidInput, got %v", err)
	}

	profile, err := svc.Update(ctx, "user-1", ProfileUpdate{Interests: []string{"go", "sre"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(profile.Interests) != 2 {
		t.Fatalf("unexpected interests: %+v", profile.Interests)
	}
	if len(users.users["user-1"].Interests) != 2 {
		t.Fatal("interests were not persisted")
	}
}

func TestProfileUpdatePhoto(t *testing.T) {
	svc, users, objects := newProfileFixture()

	profile, err := svc.Update(context.Background(), "user-1", ProfileUpdate{
		Photo:     []byte("image-bytes"),
		PhotoType: "image/png",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if profile.PhotoURL == "" {
		t.Fatal("expected a photo url")
	}
	if users.users["user-1"].PhotoURL != profile.PhotoURL {
		t.Fatal("photo url was not persisted")
	}
	if len(objects.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(objects.uploads))
	}
	// Untouched interests survive a photo-only update.
	if len(profile.Interests) != 1 || profile.Interests[0] != "devops" {
		t.Fatalf("interests should be unchanged, got %+v", profile.Interests)
	}
}
