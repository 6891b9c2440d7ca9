package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Calendar entry types.
const (
	CalendarReminder = 1
	CalendarActivity = 3
	CalendarExam     = 4
)

// CompletedContent records one finished content item inside an enrollment.
// Score is present only for graded activities (quiz, pdf).
type CompletedContent struct {
	ContentID      string `bson:"content_id" json:"contentId"`
	Score          *int   `bson:"score,omitempty" json:"score,omitempty"`
	SubmissionPath string `bson:"submission_path,omitempty" json:"submissionPath,omitempty"`
}

// CourseProgress is a user's active enrollment in one course.
type CourseProgress struct {
	CourseID         string             `bson:"course_id" json:"courseId"`
	Progress         int                `bson:"progress" json:"progress"`
	CompletedContent []CompletedContent `bson:"completed_content" json:"completedContent"`
}

// HasCompleted reports whether the content item was already recorded.
func (cp *CourseProgress) HasCompleted(contentID string) bool {
	for _, cc := range cp.CompletedContent {
		if cc.ContentID == contentID {
			return true
		}
	}
	return false
}

// GradedAverage returns the rounded average over graded content scores and
// the number of graded items. Zero average when nothing is graded yet.
func (cp *CourseProgress) GradedAverage() (avg int, graded int) {
	sum := 0
	for _, cc := range cp.CompletedContent {
		if cc.Score != nil {
			sum += *cc.Score
			graded++
		}
	}
	if graded == 0 {
		return 0, 0
	}
	return roundDiv(sum, graded), graded
}

// CompletedCourse is the terminal record an enrollment becomes at 100%.
type CompletedCourse struct {
	CourseID             string    `bson:"course_id" json:"courseId"`
	FinalScore           int       `bson:"final_score" json:"finalScore"`
	CertificateAvailable bool      `bson:"certificate_available" json:"certificateAvailable"`
	CompletedAt          time.Time `bson:"completed_at" json:"completedAt"`
}

type CalendarItem struct {
	Date        time.Time `bson:"date" json:"date"`
	Type        int       `bson:"type" json:"type"`
	Description string    `bson:"description" json:"description"`
}

type User struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photoUser,omitempty"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Password    string `bson:"password" json:"-"`
	Role        Role   `bson:"role" json:"role"`
	FirstAccess bool   `bson:"first_access" json:"firstAccess"`

	CompanyID string `bson:"company_id" json:"companyId"`
	ManagerID string `bson:"manager_id,omitempty" json:"managerId,omitempty"`

	Interests         []string           `bson:"interests" json:"interests"`
	CoursesInProgress []CourseProgress   `bson:"courses_in_progress" json:"coursesInProgress"`
	CompletedCourses  []CompletedCourse  `bson:"completed_courses" json:"completedCourses"`
	ExamResults       []ExamResult       `bson:"exam_results,omitempty" json:"examResults,omitempty"`
	Calendar          []CalendarItem     `bson:"calendar" json:"calendar"`
}

// FindEnrollment returns the active enrollment for a course, or nil.
func (u *User) FindEnrollment(courseID string) *CourseProgress {
	for i := range u.CoursesInProgress {
		if u.CoursesInProgress[i].CourseID == courseID {
			return &u.CoursesInProgress[i]
		}
	}
	return nil
}

// FindCompletion returns the completion record for a course, or nil.
func (u *User) FindCompletion(courseID string) *CompletedCourse {
	for i := range u.CompletedCourses {
		if u.CompletedCourses[i].CourseID == courseID {
			return &u.CompletedCourses[i]
		}
	}
	return nil
}

// HasExamResult reports whether the user already sat the given exam.
func (u *User) HasExamResult(examID string) bool {
	for _, r := range u.ExamResults {
		if r.ExamID == examID {
			return true
		}
	}
	return false
}

func roundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	if sum >= 0 {
		return (sum + n/2) / n
	}
	return -((-sum + n/2) / n)
}
