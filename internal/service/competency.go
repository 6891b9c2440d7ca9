package service

import (
	"context"
	"sort"

	"learning-service/internal/models"
)

// Competency is the derived, per-category competence level: a
// difficulty-weighted average of course scores. It is computed on demand
// and never persisted.
type Competency struct {
	Category        string `json:"category"`
	CompetenceLevel int    `json:"competenceLevel"`
}

// effectiveScore is a course's contribution to competency aggregation:
// the stored final score for a completed course, otherwise the average of
// the graded content scores so far (0 when nothing is graded yet).
func effectiveScore(user *models.User, courseID string) int {
	if done := user.FindCompletion(courseID); done != nil {
		return done.FinalScore
	}
	if enrollment := user.FindEnrollment(courseID); enrollment != nil {
		avg, _ := enrollment.GradedAverage()
		return avg
	}
	return 0
}

type weightedAcc struct {
	weightedSum int
	weight      int
}

func accumulateUser(acc map[string]*weightedAcc, user *models.User, courses map[string]models.Course) {
	add := func(courseID string) {
		course, ok := courses[courseID]
		if !ok || course.Difficulty <= 0 {
			return
		}
		entry := acc[course.Category]
		if entry == nil {
			entry = &weightedAcc{}
			acc[course.Category] = entry
		}
		entry.weightedSum += effectiveScore(user, courseID) * course.Difficulty
		entry.weight += course.Difficulty
	}
	for _, cp := range user.CoursesInProgress {
		add(cp.CourseID)
	}
	for _, cc := range user.CompletedCourses {
		add(cc.CourseID)
	}
}

func collect(acc map[string]*weightedAcc) []Competency {
	competencies := make([]Competency, 0, len(acc))
	for category, entry := range acc {
		if entry.weight == 0 {
			continue
		}
		competencies = append(competencies, Competency{
			Category:        category,
			CompetenceLevel: roundRatio(entry.weightedSum, entry.weight),
		})
	}
	sort.Slice(competencies, func(i, j int) bool {
		return competencies[i].Category < competencies[j].Category
	})
	return competencies
}

// CompetenciesFor rolls the user's in-progress and completed courses up by
// category, weighting each course by its difficulty (1-3). Categories with
// zero total weight are omitted. The result is sorted by category.
func CompetenciesFor(user *models.User, courses map[string]models.Course) []Competency {
	acc := make(map[string]*weightedAcc)
	accumulateUser(acc, user, courses)
	return collect(acc)
}

// TeamCompetencies aggregates over every team member's courses with the
// same difficulty weighting, for the manager dashboard.
func TeamCompetencies(team []models.User, courses map[string]models.Course) []Competency {
	acc := make(map[string]*weightedAcc)
	for i := range team {
		accumulateUser(acc, &team[i], courses)
	}
	return collect(acc)
}

// topCategory returns the category with the highest competence level,
// breaking ties alphabetically. Empty when no category qualifies.
func topCategory(competencies []Competency) string {
	best := ""
	bestLevel := -1
	for _, c := range competencies {
		if c.CompetenceLevel > bestLevel {
			best = c.Category
			bestLevel = c.CompetenceLevel
		}
	}
	return best
}

// CompetencyService resolves the course documents a user's competencies
// depend on.
type CompetencyService struct {
	Users   UserStore
	Courses CourseStore
}

func NewCompetencyService(users UserStore, courses CourseStore) *CompetencyService {
	return &CompetencyService{Users: users, Courses: courses}
}

func (s *CompetencyService) ForUser(ctx context.Context, userID string) ([]Competency, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.coursesOf(ctx, user)
	if err != nil {
		return nil, err
	}
	return CompetenciesFor(user, courses), nil
}

func (s *CompetencyService) coursesOf(ctx context.Context, user *models.User) (map[string]models.Course, error) {
	ids := make([]string, 0, len(user.CoursesInProgress)+len(user.CompletedCourses))
	for _, cp := range user.CoursesInProgress {
		ids = append(ids, cp.CourseID)
	}
	for _, cc := range user.CompletedCourses {
		ids = append(ids, cc.CourseID)
	}
	return s.Courses.FindByIDs(ctx, ids)
}
