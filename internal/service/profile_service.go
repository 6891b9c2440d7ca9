package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

// maxInterests caps how many interest tags a profile carries.
const maxInterests = 5

// ProfileCourse is one completed course line on the profile page.
type ProfileCourse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	FinalScore  int       `json:"finalScore"`
	CompletedAt time.Time `json:"completedAt"`
}

// Profile is the user's own account page.
type Profile struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	PhotoURL         string          `json:"photoUser,omitempty"`
	Role             models.Role     `json:"role"`
	Interests        []string        `json:"interests"`
	CompletedCourses []ProfileCourse `json:"completedCourses"`
	AverageTest      float64         `json:"averageTest"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Interests []string
	Photo     []byte
	PhotoType string
}

type ProfileService struct {
	Users   UserStore
	Courses CourseStore
	Objects ObjectStore
	Logger  *zap.Logger

	PhotoBucket string
}

func NewProfileService(users UserStore, courses CourseStore, objects ObjectStore, bucket string, logger *zap.Logger) *ProfileService {
	return &ProfileService{Users: users, Courses: courses, Objects: objects, PhotoBucket: bucket, Logger: logger}
}

// Get assembles the profile page: completed courses joined with the catalog
// and the average over all exam scores.
func (s *ProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.CompletedCourses))
	for _, cc := range user.CompletedCourses {
		ids = append(ids, cc.CourseID)
	}
	courses, err := s.Courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	completed := make([]ProfileCourse, 0, len(user.CompletedCourses))
	for _, cc := range user.CompletedCourses {
		course, ok := courses[cc.CourseID]
		if !ok {
			continue
		}
		completed = append(completed, ProfileCourse{
			ID:          course.ID,
			Title:       course.Title,
			Category:    course.Category,
			FinalScore:  cc.FinalScore,
			CompletedAt: cc.CompletedAt,
		})
	}

	// Exam average with one decimal of precision.
	averageTest := 0.0
	if len(user.ExamResults) > 0 {
		sum := 0
		for _, r := range user.ExamResults {
			sum += r.Score
		}
		averageTest = math.Round(float64(sum)/float64(len(user.ExamResults))*10) / 10
	}

	interests := user.Interests
	if interests == nil {
		interests = []string{}
	}
	return &Profile{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		PhotoURL:         user.PhotoURL,
		Role:             user.Role,
		Interests:        interests,
		CompletedCourses: completed,
		AverageTest:      averageTest,
	}, nil
}

// Update stores the new interest tags and, when present, the new profile
// photo.
func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	if len(update.Interests) > maxInterests {
		return nil, apperr.InvalidInput(fmt.Sprintf("at most %d interests are allowed", maxInterests))
	}
	for _, interest := range update.Interests {
		if interest == "" {
			return nil, apperr.InvalidInput("interests cannot be empty")
		}
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photoURL := user.PhotoURL
	if len(update.Photo) > 0 {
		key := fmt.Sprintf("%s/avatar-%d", userID, time.Now().Unix())
		if _, err := s.Objects.Upload(ctx, s.PhotoBucket, key, update.Photo, update.PhotoType); err != nil {
			s.Logger.Error("profile photo upload failed", zap.String("user_id", userID), zap.Error(err))
			return nil, apperr.Internal("failed to store the profile photo")
		}
		photoURL = s.Objects.PublicURL(s.PhotoBucket, key)
	}

	interests := update.Interests
	if interests == nil {
		interests = user.Interests
	}
	if err := s.Users.UpdateProfile(ctx, userID, photoURL, interests); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
