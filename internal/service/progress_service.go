package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

// CompletionStatus is returned after recording a content completion.
type CompletionStatus struct {
	CourseID        string `json:"courseId"`
	ContentID       string `json:"contentId"`
	Progress        int    `json:"progress"`
	CourseCompleted bool   `json:"courseCompleted"`
}

// QuizResult combines the grade of a submission with the updated progress.
type QuizResult struct {
	GradeResult
	Progress        int  `json:"progress"`
	CourseCompleted bool `json:"courseCompleted"`
}

// PDFSubmission reports where an uploaded activity file was stored.
type PDFSubmission struct {
	CompletionStatus
	SubmissionPath string `json:"submissionPath"`
}

// ProgressService owns the enrollment lifecycle: enrollment, content
// completion, quiz/pdf/exam submission and the transition of a finished
// enrollment into a completion record.
type ProgressService struct {
	Users         UserStore
	Courses       CourseStore
	Exams         ExamStore
	Objects       ObjectStore
	Notifications *NotificationService
	Logger        *zap.Logger

	SubmissionBucket string
}

func NewProgressService(users UserStore, courses CourseStore, exams ExamStore, objects ObjectStore, notifications *NotificationService, bucket string, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		Users:            users,
		Courses:          courses,
		Exams:            exams,
		Objects:          objects,
		Notifications:    notifications,
		Logger:           logger,
		SubmissionBucket: bucket,
	}
}

// Enroll registers an employee on a course on behalf of their manager.
func (s *ProgressService) Enroll(ctx context.Context, managerCompanyID, employeeID, courseID string) error {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	employee, err := s.Users.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee.CompanyID != managerCompanyID {
		return apperr.Forbidden("you can only enroll employees of your own company")
	}
	if employee.FindEnrollment(courseID) != nil {
		return apperr.Conflict("employee is already enrolled in this course")
	}

	enrollment := models.CourseProgress{
		CourseID:         courseID,
		Progress:         0,
		CompletedContent: []models.CompletedContent{},
	}
	if err := s.Users.AddEnrollment(ctx, employeeID, enrollment); err != nil {
		return err
	}

	s.Notifications.Notify(ctx, employeeID,
		fmt.Sprintf("You have been enrolled in the course %q by your manager.", course.Title),
		"/courses/"+courseID)
	return nil
}

// MarkContentComplete records a non-graded content item. Repeating the call
// for an already recorded item is a no-op that returns the current progress.
func (s *ProgressService) MarkContentComplete(ctx context.Context, userID, courseID, contentID string) (*CompletionStatus, error) {
	user, course, enrollment, err := s.loadEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	item := course.FindContent(contentID)
	if item == nil {
		return nil, apperr.NotFound("content not found in this course")
	}
	if enrollment.HasCompleted(contentID) {
		return &CompletionStatus{
			CourseID:  courseID,
			ContentID: contentID,
			Progress:  enrollment.Progress,
		}, nil
	}

	entry := models.CompletedContent{ContentID: contentID}
	return s.record(ctx, user, course, enrollment, entry)
}

// SubmitQuiz grades the submitted answers and records the quiz completion.
func (s *ProgressService) SubmitQuiz(ctx context.Context, userID, courseID, contentID string, answers []Answer) (*QuizResult, error) {
	user, course, enrollment, err := s.loadEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	item := course.FindContent(contentID)
	if item == nil {
		return nil, apperr.NotFound("content not found in this course")
	}
	if item.Type != models.ContentQuiz {
		return nil, apperr.InvalidInput("this content item is not a quiz")
	}
	if enrollment.HasCompleted(contentID) {
		return nil, apperr.Conflict("this quiz was already submitted")
	}

	grade := Grade(item.Questions, answers)
	score := grade.Score
	entry := models.CompletedContent{ContentID: contentID, Score: &score}

	status, err := s.record(ctx, user, course, enrollment, entry)
	if err != nil {
		return nil, err
	}
	return &QuizResult{
		GradeResult:     grade,
		Progress:        status.Progress,
		CourseCompleted: status.CourseCompleted,
	}, nil
}

// SubmitPDF stores the uploaded activity file and records the completion.
// The score stays absent until the submission is reviewed.
func (s *ProgressService) SubmitPDF(ctx context.Context, userID, courseID, contentID string, file []byte) (*PDFSubmission, error) {
	if len(file) == 0 {
		return nil, apperr.InvalidInput("no file was uploaded")
	}
	user, course, enrollment, err := s.loadEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, errNotEnrolled) {
			return nil, apperr.Forbidden("you are not enrolled in this course")
		}
		return nil, err
	}
	item := course.FindContent(contentID)
	if item == nil {
		return nil, apperr.NotFound("content not found in this course")
	}
	if item.Type != models.ContentPDFActivity {
		return nil, apperr.InvalidInput("this content item does not accept file submissions")
	}
	if enrollment.HasCompleted(contentID) {
		return nil, apperr.Conflict("this activity was already submitted")
	}

	key := fmt.Sprintf("%s/%s-%d.pdf", userID, contentID, time.Now().Unix())
	path, err := s.Objects.Upload(ctx, s.SubmissionBucket, key, file, "application/pdf")
	if err != nil {
		s.Logger.Error("activity upload failed", zap.String("key", key), zap.Error(err))
		return nil, apperr.Internal("failed to store the submitted file")
	}

	entry := models.CompletedContent{ContentID: contentID, SubmissionPath: path}
	status, err := s.record(ctx, user, course, enrollment, entry)
	if err != nil {
		return nil, err
	}
	return &PDFSubmission{CompletionStatus: *status, SubmissionPath: path}, nil
}

// SubmitExam grades the course's final exam for the user. An exam can be
// sat once; the result is stored on the user document.
func (s *ProgressService) SubmitExam(ctx context.Context, userID, courseID string, answers []Answer) (*GradeResult, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.HaveExam {
		return nil, apperr.InvalidInput("this course has no final exam")
	}
	exam, err := s.Exams.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.FindEnrollment(courseID) == nil && user.FindCompletion(courseID) == nil {
		return nil, apperr.Forbidden("you are not enrolled in this course")
	}
	if user.HasExamResult(exam.ID) {
		return nil, apperr.Conflict("this exam was already submitted")
	}

	grade := Grade(exam.Questions, answers)
	result := models.ExamResult{
		ExamID:      exam.ID,
		CourseID:    courseID,
		Score:       grade.Score,
		SubmittedAt: time.Now(),
	}
	matched, err := s.Users.AddExamResult(ctx, userID, result)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.Conflict("this exam was already submitted")
	}
	return &grade, nil
}

// loadEnrollment fetches the user, the course and the user's active
// enrollment, classifying each missing piece.
func (s *ProgressService) loadEnrollment(ctx context.Context, userID, courseID string) (*models.User, *models.Course, *models.CourseProgress, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, nil, nil, err
	}
	enrollment := user.FindEnrollment(courseID)
	if enrollment == nil {
		return nil, nil, nil, errNotEnrolled
	}
	return user, course, enrollment, nil
}

var errNotEnrolled = apperr.NotFound("no active enrollment for this course")

// record appends the entry with an append-if-absent conditional update,
// recomputes progress against the course's current content count and, when
// the course is finished, replaces the enrollment with a completion record.
func (s *ProgressService) record(ctx context.Context, user *models.User, course *models.Course, enrollment *models.CourseProgress, entry models.CompletedContent) (*CompletionStatus, error) {
	total := course.TotalContentItems()
	completed := len(enrollment.CompletedContent) + 1
	progress := enrollment.Progress
	if total > 0 {
		progress = roundPercent(completed, total)
	}

	matched, err := s.Users.AppendCompletedContent(ctx, user.ID, course.ID, entry, progress)
	if err != nil {
		return nil, err
	}
	if !matched {
		// A concurrent request recorded the same item between our read and
		// the conditional write.
		return nil, apperr.Conflict("this content was already recorded")
	}

	status := &CompletionStatus{
		CourseID:  course.ID,
		ContentID: entry.ContentID,
		Progress:  progress,
	}

	if total > 0 && completed >= total {
		if err := s.finalize(ctx, user, course, enrollment, entry); err != nil {
			return nil, err
		}
		status.CourseCompleted = true
	}
	return status, nil
}

// finalize performs the enrollment → completion transition. The final score
// snapshots the average of the graded content scores; a course without
// graded items completes at 100.
func (s *ProgressService) finalize(ctx context.Context, user *models.User, course *models.Course, enrollment *models.CourseProgress, last models.CompletedContent) error {
	final := append(append([]models.CompletedContent{}, enrollment.CompletedContent...), last)
	snapshot := models.CourseProgress{CompletedContent: final}
	finalScore, graded := snapshot.GradedAverage()
	if graded == 0 {
		finalScore = 100
	}

	record := models.CompletedCourse{
		CourseID:             course.ID,
		FinalScore:           finalScore,
		CertificateAvailable: true,
		CompletedAt:          time.Now(),
	}
	if err := s.Users.CompleteCourse(ctx, user.ID, course.ID, record); err != nil {
		return err
	}

	s.Notifications.Notify(ctx, user.ID,
		fmt.Sprintf("Congratulations! You completed the course %q. Your certificate is available.", course.Title),
		"/certificates/"+course.ID)
	return nil
}
