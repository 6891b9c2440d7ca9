package service

import (
	"context"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

var errNotDirectReport = apperr.Forbidden("this employee is not one of your direct reports")

// CourseStatusBreakdown counts how a team stands against the active
// catalog: each (employee, active course) pair is exactly one of these.
type CourseStatusBreakdown struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// DashboardData is the manager's roll-up over their direct reports.
type DashboardData struct {
	Username              string                `json:"username"`
	IsManager             bool                  `json:"isManager"`
	IsAdmin               bool                  `json:"isAdmin"`
	TotalEmployees        int                   `json:"totalEmployees"`
	TotalCourses          int64                 `json:"totalCourses"`
	TotalEnrollments      int                   `json:"totalRegistrations"`
	CompletionRate        int                   `json:"completionRate"`
	PerformanceByCategory []Competency          `json:"performanceByCategory"`
	CourseStatus          CourseStatusBreakdown `json:"courseStatus"`
}

// EmployeeSummary is one row of the manager's team listing.
type EmployeeSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	CoursesCompleted  int    `json:"coursesCompleted"`
	CoursesInProgress int    `json:"coursesInProgress"`
	AverageScore      int    `json:"averageScore"`
	TopCategory       string `json:"topCategory"`
	IsManager         bool   `json:"isManager"`
}

// EmployeeCourse is a course line inside the employee detail view.
type EmployeeCourse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
	Score      int    `json:"score"`
	Progress   int    `json:"progress,omitempty"`
}

// EmployeeDetail is the manager's drill-down into one direct report.
type EmployeeDetail struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Competencies []Competency     `json:"competencies"`
	Completed    []EmployeeCourse `json:"completedCourses"`
	InProgress   []EmployeeCourse `json:"coursesInProgress"`
}

type ManagerService struct {
	Users   UserStore
	Courses CourseStore
}

func NewManagerService(users UserStore, courses CourseStore) *ManagerService {
	return &ManagerService{Users: users, Courses: courses}
}

// Dashboard aggregates enrollment and completion metrics across the
// manager's direct reports.
func (s *ManagerService) Dashboard(ctx context.Context, managerID string) (*DashboardData, error) {
	manager, err := s.Users.FindByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	team, err := s.Users.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	totalCourses, err := s.Courses.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.teamCourses(ctx, team)
	if err != nil {
		return nil, err
	}

	data := buildDashboard(team, courses, totalCourses)
	data.Username = manager.Name
	data.IsManager = manager.Role == models.RoleManager
	data.IsAdmin = manager.Role == models.RoleAdmin
	return data, nil
}

// buildDashboard computes the team metrics from already-fetched documents.
// Completed enrollments count as 100 toward the completion rate.
func buildDashboard(team []models.User, courses map[string]models.Course, totalCourses int64) *DashboardData {
	totalEnrollments := 0
	sumProgress := 0
	var status CourseStatusBreakdown

	for i := range team {
		employee := &team[i]
		ongoing := employee.CoursesInProgress
		completed := employee.CompletedCourses

		totalEnrollments += len(ongoing) + len(completed)
		for _, cp := range ongoing {
			sumProgress += cp.Progress
		}
		sumProgress += len(completed) * 100

		status.Completed += len(completed)
		status.InProgress += len(ongoing)
		notStarted := int(totalCourses) - len(completed) - len(ongoing)
		if notStarted > 0 {
			status.NotStarted += notStarted
		}
	}

	return &DashboardData{
		TotalEmployees:        len(team),
		TotalCourses:          totalCourses,
		TotalEnrollments:      totalEnrollments,
		CompletionRate:        roundRatio(sumProgress, totalEnrollments),
		PerformanceByCategory: TeamCompetencies(team, courses),
		CourseStatus:          status,
	}
}

// EmployeesSummary lists every direct report with their score average and
// strongest category.
func (s *ManagerService) EmployeesSummary(ctx context.Context, managerID string) ([]EmployeeSummary, error) {
	team, err := s.Users.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	courses, err := s.teamCourses(ctx, team)
	if err != nil {
		return nil, err
	}

	summaries := make([]EmployeeSummary, 0, len(team))
	for i := range team {
		summaries = append(summaries, summarizeEmployee(&team[i], courses))
	}
	return summaries, nil
}

func summarizeEmployee(employee *models.User, courses map[string]models.Course) EmployeeSummary {
	totalScore := 0
	scored := 0
	for _, cp := range employee.CoursesInProgress {
		for _, cc := range cp.CompletedContent {
			if cc.Score != nil {
				totalScore += *cc.Score
				scored++
			}
		}
	}

	return EmployeeSummary{
		ID:                employee.ID,
		Name:              employee.Name,
		Email:             employee.Email,
		CoursesCompleted:  len(employee.CompletedCourses),
		CoursesInProgress: len(employee.CoursesInProgress),
		AverageScore:      roundRatio(totalScore, scored),
		TopCategory:       topCategory(CompetenciesFor(employee, courses)),
		IsManager:         employee.Role == models.RoleManager,
	}
}

// EmployeeDetail resolves one direct report's competencies and course
// lists. Managers can only inspect their own reports.
func (s *ManagerService) EmployeeDetail(ctx context.Context, managerID, employeeID string) (*EmployeeDetail, error) {
	employee, err := s.Users.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.ManagerID != managerID {
		return nil, errNotDirectReport
	}
	courses, err := s.teamCourses(ctx, []models.User{*employee})
	if err != nil {
		return nil, err
	}

	detail := &EmployeeDetail{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		Competencies: CompetenciesFor(employee, courses),
		Completed:    []EmployeeCourse{},
		InProgress:   []EmployeeCourse{},
	}
	for _, cc := range employee.CompletedCourses {
		course, ok := courses[cc.CourseID]
		if !ok {
			continue
		}
		detail.Completed = append(detail.Completed, EmployeeCourse{
			ID:         course.ID,
			Title:      course.Title,
			Category:   course.Category,
			Difficulty: course.Difficulty,
			Score:      cc.FinalScore,
		})
	}
	for _, cp := range employee.CoursesInProgress {
		course, ok := courses[cp.CourseID]
		if !ok {
			continue
		}
		avg, _ := cp.GradedAverage()
		detail.InProgress = append(detail.InProgress, EmployeeCourse{
			ID:         course.ID,
			Title:      course.Title,
			Category:   course.Category,
			Difficulty: course.Difficulty,
			Score:      avg,
			Progress:   cp.Progress,
		})
	}
	return detail, nil
}

func (s *ManagerService) teamCourses(ctx context.Context, team []models.User) (map[string]models.Course, error) {
	seen := make(map[string]bool)
	var ids []string
	for i := range team {
		for _, cp := range team[i].CoursesInProgress {
			if !seen[cp.CourseID] {
				seen[cp.CourseID] = true
				ids = append(ids, cp.CourseID)
			}
		}
		for _, cc := range team[i].CompletedCourses {
			if !seen[cc.CourseID] {
				seen[cc.CourseID] = true
				ids = append(ids, cc.CourseID)
			}
		}
	}
	return s.Courses.FindByIDs(ctx, ids)
}
