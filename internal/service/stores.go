package service

import (
	"context"
	"time"

	"learning-service/internal/models"
)

// Store interfaces are satisfied by the mongo-backed repositories and by
// in-memory fakes in tests. Implementations return *apperr.Error for
// domain-classifiable failures (missing documents in particular).

type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByManager(ctx context.Context, managerID string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error

	// The password updates also clear the first-access flag.
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdatePasswordByID(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id string, photoURL string, interests []string) error

	AddEnrollment(ctx context.Context, userID string, enrollment models.CourseProgress) error
	// AppendCompletedContent pushes the entry and sets the new progress in a
	// single conditional update. It matches only when the enrollment exists
	// and the content id is not yet recorded; matched reports whether the
	// write happened.
	AppendCompletedContent(ctx context.Context, userID, courseID string, entry models.CompletedContent, progress int) (matched bool, err error)
	// CompleteCourse atomically removes the enrollment and appends the
	// completion record.
	CompleteCourse(ctx context.Context, userID, courseID string, record models.CompletedCourse) error
	AddExamResult(ctx context.Context, userID string, result models.ExamResult) (matched bool, err error)

	AddCalendarItem(ctx context.Context, userID string, item models.CalendarItem) error
	DeleteByCompany(ctx context.Context, companyID string) error
}

// CourseFilter narrows course listings.
type CourseFilter struct {
	Category   string
	Difficulty int
	Page       int
	Limit      int
}

type CourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByTitle(ctx context.Context, title string) (*models.Course, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error)
	CountActive(ctx context.Context) (int64, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	SetExamID(ctx context.Context, courseID, examID string) error
}

type ExamStore interface {
	FindByCourse(ctx context.Context, courseID string) (*models.Exam, error)
	Create(ctx context.Context, exam *models.Exam) error
	DeleteByCourse(ctx context.Context, courseID string) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type CompanyStore interface {
	FindByID(ctx context.Context, id string) (*models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	List(ctx context.Context) ([]models.Company, error)
	Delete(ctx context.Context, id string) error
}

// ResetCodeStore is the expiring-key store for password recovery codes.
type ResetCodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the stored code, or "" when absent or expired.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// ObjectStore stores bytes under a key and hands back a path.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	PublicURL(bucket, key string) string
}

// Publisher is the fire-and-forget event sink. Failures are logged by the
// implementation, never propagated into request handling.
type Publisher interface {
	Publish(eventType string, payload any) error
}

// Mailer sends templated email without blocking the caller on failure.
type Mailer interface {
	SendPasswordResetEmail(to, code string)
	SendWelcomeEmail(to, tempPassword string)
}
