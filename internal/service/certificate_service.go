package service

import (
	"context"
	"fmt"
	"time"

	"learning-service/internal/apperr"

	"go.uber.org/zap"
)

// CertificateData is everything printed on a certificate.
type CertificateData struct {
	UserName    string
	CourseTitle string
	Duration    string
	CompletedAt time.Time
}

// CertificateRenderer turns certificate data into an encoded PNG.
type CertificateRenderer interface {
	Render(data CertificateData) ([]byte, error)
}

// CertificateService issues completion certificates.
type CertificateService struct {
	Users    UserStore
	Courses  CourseStore
	Renderer CertificateRenderer
	Objects  ObjectStore
	Logger   *zap.Logger

	Bucket string
}

func NewCertificateService(users UserStore, courses CourseStore, renderer CertificateRenderer, objects ObjectStore, bucket string, logger *zap.Logger) *CertificateService {
	return &CertificateService{
		Users:    users,
		Courses:  courses,
		Renderer: renderer,
		Objects:  objects,
		Bucket:   bucket,
		Logger:   logger,
	}
}

// Generate renders the certificate PNG for a completed course. Only the
// completion's owner can generate it.
func (s *CertificateService) Generate(ctx context.Context, userID, courseID string) ([]byte, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	completion := user.FindCompletion(courseID)
	if completion == nil {
		return nil, apperr.Forbidden("certificates are only available for completed courses")
	}
	if !completion.CertificateAvailable {
		return nil, apperr.Forbidden("no certificate is available for this course")
	}
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	png, err := s.Renderer.Render(CertificateData{
		UserName:    user.Name,
		CourseTitle: course.Title,
		Duration:    course.Duration,
		CompletedAt: completion.CompletedAt,
	})
	if err != nil {
		s.Logger.Error("certificate rendering failed",
			zap.String("user_id", userID), zap.String("course_id", courseID), zap.Error(err))
		return nil, apperr.Internal("failed to render the certificate")
	}
	return png, nil
}

// GenerateAndStore renders the certificate and uploads it, returning the
// stored path.
func (s *CertificateService) GenerateAndStore(ctx context.Context, userID, courseID string) (string, error) {
	png, err := s.Generate(ctx, userID, courseID)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.png", userID, courseID)
	path, err := s.Objects.Upload(ctx, s.Bucket, key, png, "image/png")
	if err != nil {
		s.Logger.Error("certificate upload failed", zap.String("key", key), zap.Error(err))
		return "", apperr.Internal("failed to store the certificate")
	}
	return path, nil
}
