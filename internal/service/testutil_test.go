package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"go.uber.org/zap"
)

// In-memory store fakes mirroring the repositories' conditional-update
// semantics, so service flows can be exercised without a database.

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (s *fakeUserStore) FindByManager(_ context.Context, managerID string) ([]models.User, error) {
	var team []models.User
	for _, u := range s.users {
		if u.ManagerID == managerID {
			team = append(team, *u)
		}
	}
	sort.Slice(team, func(i, j int) bool { return team[i].ID < team[j].ID })
	return team, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(s.users)+1)
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	u.Password = passwordHash
	u.FirstAccess = false
	return nil
}

func (s *fakeUserStore) UpdatePasswordByID(ctx context.Context, id, passwordHash string) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Password = passwordHash
	u.FirstAccess = false
	return nil
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, id string, photoURL string, interests []string) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.PhotoURL = photoURL
	u.Interests = interests
	return nil
}

func (s *fakeUserStore) AddEnrollment(ctx context.Context, userID string, enrollment models.CourseProgress) error {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	u.CoursesInProgress = append(u.CoursesInProgress, enrollment)
	return nil
}

func (s *fakeUserStore) AppendCompletedContent(ctx context.Context, userID, courseID string, entry models.CompletedContent, progress int) (bool, error) {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	enrollment := u.FindEnrollment(courseID)
	if enrollment == nil || enrollment.HasCompleted(entry.ContentID) {
		return false, nil
	}
	enrollment.CompletedContent = append(enrollment.CompletedContent, entry)
	enrollment.Progress = progress
	return true, nil
}

func (s *fakeUserStore) CompleteCourse(ctx context.Context, userID, courseID string, record models.CompletedCourse) error {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	kept := u.CoursesInProgress[:0]
	for _, cp := range u.CoursesInProgress {
		if cp.CourseID != courseID {
			kept = append(kept, cp)
		}
	}
	u.CoursesInProgress = kept
	u.CompletedCourses = append(u.CompletedCourses, record)
	return nil
}

func (s *fakeUserStore) AddExamResult(ctx context.Context, userID string, result models.ExamResult) (bool, error) {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u.HasExamResult(result.ExamID) {
		return false, nil
	}
	u.ExamResults = append(u.ExamResults, result)
	return true, nil
}

func (s *fakeUserStore) AddCalendarItem(ctx context.Context, userID string, item models.CalendarItem) error {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Calendar = append(u.Calendar, item)
	return nil
}

func (s *fakeUserStore) DeleteByCompany(_ context.Context, companyID string) error {
	for id, u := range s.users {
		if u.CompanyID == companyID {
			delete(s.users, id)
		}
	}
	return nil
}

type fakeCourseStore struct {
	courses map[string]*models.Course
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{courses: make(map[string]*models.Course)}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) FindByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := s.courses[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("course not found")
}

func (s *fakeCourseStore) FindByTitle(_ context.Context, title string) (*models.Course, error) {
	for _, c := range s.courses {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, apperr.NotFound("course not found")
}

func (s *fakeCourseStore) FindByIDs(_ context.Context, ids []string) (map[string]models.Course, error) {
	out := make(map[string]models.Course)
	for _, id := range ids {
		if c, ok := s.courses[id]; ok {
			out[id] = *c
		}
	}
	return out, nil
}

func (s *fakeCourseStore) List(_ context.Context, filter CourseFilter) ([]models.Course, int64, error) {
	var all []models.Course
	for _, c := range s.courses {
		if !c.IsActive {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Difficulty != 0 && c.Difficulty != filter.Difficulty {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(all) {
		return []models.Course{}, total, nil
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *fakeCourseStore) CountActive(_ context.Context) (int64, error) {
	count := int64(0)
	for _, c := range s.courses {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = fmt.Sprintf("course-%d", len(s.courses)+1)
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, id string) error {
	if _, ok := s.courses[id]; !ok {
		return apperr.NotFound("course not found")
	}
	delete(s.courses, id)
	return nil
}

func (s *fakeCourseStore) SetExamID(ctx context.Context, courseID, examID string) error {
	c, err := s.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	c.ExamID = examID
	return nil
}

type fakeExamStore struct {
	exams map[string]*models.Exam // keyed by course id
}

func newFakeExamStore(exams ...*models.Exam) *fakeExamStore {
	s := &fakeExamStore{exams: make(map[string]*models.Exam)}
	for _, e := range exams {
		s.exams[e.CourseID] = e
	}
	return s
}

func (s *fakeExamStore) FindByCourse(_ context.Context, courseID string) (*models.Exam, error) {
	if e, ok := s.exams[courseID]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("exam not found")
}

func (s *fakeExamStore) Create(_ context.Context, exam *models.Exam) error {
	if exam.ID == "" {
		exam.ID = "exam-" + exam.CourseID
	}
	s.exams[exam.CourseID] = exam
	return nil
}

func (s *fakeExamStore) DeleteByCourse(_ context.Context, courseID string) error {
	delete(s.exams, courseID)
	return nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	n.ID = fmt.Sprintf("notification-%d", len(s.notifications)+1)
	n.CreatedAt = time.Now()
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id, userID string) error {
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
			return nil
		}
	}
	return apperr.NotFound("notification not found")
}

type fakeCompanyStore struct {
	companies map[string]*models.Company
}

func newFakeCompanyStore(companies ...*models.Company) *fakeCompanyStore {
	s := &fakeCompanyStore{companies: make(map[string]*models.Company)}
	for _, c := range companies {
		s.companies[c.ID] = c
	}
	return s
}

func (s *fakeCompanyStore) FindByID(_ context.Context, id string) (*models.Company, error) {
	if c, ok := s.companies[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("company not found")
}

func (s *fakeCompanyStore) FindByName(_ context.Context, name string) (*models.Company, error) {
	for _, c := range s.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, apperr.NotFound("company not found")
}

func (s *fakeCompanyStore) Create(_ context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = fmt.Sprintf("company-%d", len(s.companies)+1)
	}
	s.companies[company.ID] = company
	return nil
}

func (s *fakeCompanyStore) List(_ context.Context) ([]models.Company, error) {
	var out []models.Company
	for _, c := range s.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeCompanyStore) Delete(_ context.Context, id string) error {
	delete(s.companies, id)
	return nil
}

type fakeResetCodeStore struct {
	codes map[string]string
}

func newFakeResetCodeStore() *fakeResetCodeStore {
	return &fakeResetCodeStore{codes: make(map[string]string)}
}

func (s *fakeResetCodeStore) Set(_ context.Context, email, code string, _ time.Duration) error {
	s.codes[email] = code
	return nil
}

func (s *fakeResetCodeStore) Get(_ context.Context, email string) (string, error) {
	return s.codes[email], nil
}

func (s *fakeResetCodeStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

type fakeObjectStore struct {
	uploads map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: make(map[string][]byte)}
}

func (s *fakeObjectStore) Upload(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	path := bucket + "/" + key
	s.uploads[path] = data
	return path, nil
}

func (s *fakeObjectStore) PublicURL(bucket, key string) string {
	return "http://storage.local/" + bucket + "/" + key
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(eventType string, _ any) error {
	p.events = append(p.events, eventType)
	return nil
}

type fakeMailer struct {
	resetEmails   []string
	welcomeEmails []string
	lastCode      string
	lastPassword  string
}

func (m *fakeMailer) SendPasswordResetEmail(to, code string) {
	m.resetEmails = append(m.resetEmails, to)
	m.lastCode = code
}

func (m *fakeMailer) SendWelcomeEmail(to, tempPassword string) {
	m.welcomeEmails = append(m.welcomeEmails, to)
	m.lastPassword = tempPassword
}

func newTestNotifications() (*NotificationService, *fakeNotificationStore, *fakePublisher) {
	store := &fakeNotificationStore{}
	publisher := &fakePublisher{}
	return NewNotificationService(store, publisher, zap.NewNop()), store, publisher
}

// quizContent builds a quiz item where every question's first option is the
// correct one.
func quizContent(id string, questionCount int) models.ContentItem {
	item := models.ContentItem{ID: id, Type: models.ContentQuiz, Title: "Quiz " + id}
	for i := 0; i < questionCount; i++ {
		qid := fmt.Sprintf("%s-q%d", id, i+1)
		item.Questions = append(item.Questions, models.QuizQuestion{
			ID:       qid,
			Question: "?",
			Options: []models.Option{
				{ID: qid + "-a", Text: "right"},
				{ID: qid + "-b", Text: "wrong"},
			},
			CorrectOptionID: qid + "-a",
		})
	}
	return item
}

func intPtr(v int) *int { return &v }
