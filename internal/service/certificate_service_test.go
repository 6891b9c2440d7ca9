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

type fakeRenderer struct {
	last CertificateData
}

func (r *fakeRenderer) Render(data CertificateData) ([]byte, error) {
	r.last = data
	return []byte("png-bytes"), nil
}

func newCertificateFixture() (*CertificateService, *fakeRenderer, *fakeObjectStore) {
	user := &models.User{
		ID: "user-1", Name: "Ana",
		CompletedCourses: []models.CompletedCourse{
			{CourseID: "course-1", FinalScore: 90, CertificateAvailable: true, CompletedAt: time.Now()},
		},
	}
	courses := newFakeCourseStore(&models.Course{ID: "course-1", Title: "Docker", Duration: "6h"})
	renderer := &fakeRenderer{}
	objects := newFakeObjectStore()
	svc := NewCertificateService(newFakeUserStore(user), courses, renderer, objects, "certificates", zap.NewNop())
	return svc, renderer, objects
}

func TestCertificateGenerate(t *testing.T) {
	svc, renderer, _ := newCertificateFixture()

	png, err := svc.Generate(context.Background(), "user-1", "course-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected rendered bytes")
	}
	if renderer.last.UserName != "Ana" || renderer.last.CourseTitle != "Docker" {
		t.Fatalf("unexpected certificate data: %+v", renderer.last)
	}
}

func TestCertificateRequiresCompletion(t *testing.T) {
	svc, _, _ := newCertificateFixture()

	_, err := svc.Generate(context.Background(), "user-1", "not-completed")
	if !apperr.Status(err, http.StatusForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestCertificateGenerateAndStore(t *testing.T) {
	svc, _, objects := newCertificateFixture()

	path, err := svc.GenerateAndStore(context.Background(), "user-1", "course-1")
	if err != nil {
		t.Fatalf("GenerateAndStore: %v", err)
	}
	if path == "" {
		t.Fatal("expected a stored path")
	}
	if _, ok := objects.uploads[path]; !ok {
		t.Fatal("certificate was not uploaded")
	}
}
