package service

import (
	"context"
	"testing"

	"learning-service/internal/models"
)

func TestCompetenciesFor(t *testing.T) {
	courses := map[string]models.Course{
		"easy-devops": {ID: "easy-devops", Category: "DevOps", Difficulty: 1},
		"hard-devops": {ID: "hard-devops", Category: "DevOps", Difficulty: 3},
		"go-course":   {ID: "go-course", Category: "Backend", Difficulty: 2},
	}

	tests := []struct {
		name string
		user models.User
		want []Competency
	}{
		{
			name: "difficulty weighted average",
			user: models.User{
				CompletedCourses: []models.CompletedCourse{
					{CourseID: "easy-devops", FinalScore: 50},
					{CourseID: "hard-devops", FinalScore: 90},
				},
			},
			// (50*1 + 90*3) / 4 = 80
			want: []Competency{{Category: "DevOps", CompetenceLevel: 80}},
		},
		{
			name: "in-progress course contributes its graded average",
			user: models.User{
				CoursesInProgress: []models.CourseProgress{
					{CourseID: "go-course", CompletedContent: []models.CompletedContent{
						{ContentID: "a", Score: intPtr(60)},
						{ContentID: "b", Score: intPtr(80)},
						{ContentID: "c"},
					}},
				},
			},
			want: []Competency{{Category: "Backend", CompetenceLevel: 70}},
		},
		{
			name: "categories sorted, unknown courses skipped",
			user: models.User{
				CompletedCourses: []models.CompletedCourse{
					{CourseID: "go-course", FinalScore: 90},
					{CourseID: "easy-devops", FinalScore: 40},
					{CourseID: "deleted-course", FinalScore: 100},
				},
			},
			want: []Competency{
				{Category: "Backend", CompetenceLevel: 90},
				{Category: "DevOps", CompetenceLevel: 40},
			},
		},
		{
			name: "no courses",
			user: models.User{},
			want: []Competency{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompetenciesFor(&tt.user, courses)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("competency %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTeamCompetencies(t *testing.T) {
	courses := map[string]models.Course{
		"easy-devops": {ID: "easy-devops", Category: "DevOps", Difficulty: 1},
		"hard-devops": {ID: "hard-devops", Category: "DevOps", Difficulty: 3},
	}
	team := []models.User{
		{CompletedCourses: []models.CompletedCourse{{CourseID: "easy-devops", FinalScore: 50}}},
		{CompletedCourses: []models.CompletedCourse{{CourseID: "hard-devops", FinalScore: 90}}},
	}

	got := TeamCompetencies(team, courses)
	if len(got) != 1 {
		t.Fatalf("expected one category, got %v", got)
	}
	if got[0].CompetenceLevel != 80 {
		t.Fatalf("expected level 80, got %d", got[0].CompetenceLevel)
	}
}

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name         string
		competencies []Competency
		want         string
	}{
		{"highest wins", []Competency{{"Backend", 70}, {"DevOps", 85}}, "DevOps"},
		{"tie breaks alphabetically", []Competency{{"Backend", 70}, {"DevOps", 70}}, "Backend"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topCategory(tt.competencies); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompetencyServiceForUser(t *testing.T) {
	user := &models.User{
		ID: "employee-1",
		CompletedCourses: []models.CompletedCourse{
			{CourseID: "course-1", FinalScore: 90},
		},
	}
	course := &models.Course{ID: "course-1", Category: "Security", Difficulty: 2}

	svc := NewCompetencyService(newFakeUserStore(user), newFakeCourseStore(course))
	got, err := svc.ForUser(context.Background(), "employee-1")
	if err != nil {
		t.Fatalf("ForUser: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Security" || got[0].CompetenceLevel != 90 {
		t.Fatalf("unexpected competencies: %v", got)
	}
}
