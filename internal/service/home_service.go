package service

import (
	"context"

	"learning-service/internal/models"
)

// PersonalProgress is the logged-in user's home screen summary.
type PersonalProgress struct {
	Username        string `json:"username"`
	IsManager       bool   `json:"isManager"`
	TotalCourses    int    `json:"totalCourses"`
	OngoingCourses  int    `json:"ongoingCourses"`
	CompleteCourses int    `json:"completeCourses"`
	PercentGeneral  int    `json:"percentGeneral"`
}

// CourseCard is one entry of the in-progress course carousel.
type CourseCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Progress    int    `json:"progress"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
	Category    string `json:"category"`
}

// maxCourseCards caps the home carousel.
const maxCourseCards = 8

type HomeService struct {
	Users   UserStore
	Courses CourseStore
}

func NewHomeService(users UserStore, courses CourseStore) *HomeService {
	return &HomeService{Users: users, Courses: courses}
}

// PersonalProgress summarizes the user's own course standing: the general
// percentage is the mean progress of ongoing courses, or 100 when only
// completed courses remain.
func (s *HomeService) PersonalProgress(ctx context.Context, userID string) (*PersonalProgress, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ongoing := len(user.CoursesInProgress)
	completed := len(user.CompletedCourses)

	percent := 0
	if ongoing > 0 {
		sum := 0
		for _, cp := range user.CoursesInProgress {
			sum += cp.Progress
		}
		percent = roundRatio(sum, ongoing)
	} else if completed > 0 {
		percent = 100
	}

	return &PersonalProgress{
		Username:        user.Name,
		IsManager:       user.Role == models.RoleManager,
		TotalCourses:    ongoing + completed,
		OngoingCourses:  ongoing,
		CompleteCourses: completed,
		PercentGeneral:  percent,
	}, nil
}

// CoursesInProgress joins the user's enrollments with the course catalog
// and returns at most the first eight cards.
func (s *HomeService) CoursesInProgress(ctx context.Context, userID string) ([]CourseCard, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.CoursesInProgress))
	for _, cp := range user.CoursesInProgress {
		ids = append(ids, cp.CourseID)
	}
	courses, err := s.Courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]CourseCard, 0, len(user.CoursesInProgress))
	for _, cp := range user.CoursesInProgress {
		course, ok := courses[cp.CourseID]
		if !ok {
			continue
		}
		cards = append(cards, CourseCard{
			ID:          course.ID,
			Title:       course.Title,
			Image:       course.Image,
			Progress:    cp.Progress,
			Description: course.Description,
			Difficulty:  course.Difficulty,
			Category:    course.Category,
		})
		if len(cards) == maxCourseCards {
			break
		}
	}
	return cards, nil
}
