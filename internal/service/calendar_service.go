package service

import (
	"context"
	"sort"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"
)

// eventWindow bounds the calendar feed around now.
const eventWindow = 6 * 30 * 24 * time.Hour

// CalendarEvent is one row of the merged event feed.
type CalendarEvent struct {
	Date        time.Time `json:"date"`
	Type        int       `json:"type"`
	Description string    `json:"description"`
	CourseID    string    `json:"courseId,omitempty"`
	CourseTitle string    `json:"courseTitle,omitempty"`
}

// CalendarService merges personal reminders with the deadlines of the
// user's enrolled courses.
type CalendarService struct {
	Users   UserStore
	Courses CourseStore
}

func NewCalendarService(users UserStore, courses CourseStore) *CalendarService {
	return &CalendarService{Users: users, Courses: courses}
}

// AddReminder appends a personal reminder to the user's calendar.
func (s *CalendarService) AddReminder(ctx context.Context, userID, description string, date time.Time) (*models.CalendarItem, error) {
	if description == "" {
		return nil, apperr.InvalidInput("a reminder needs a description")
	}
	if date.IsZero() {
		return nil, apperr.InvalidInput("a reminder needs a date")
	}
	item := models.CalendarItem{
		Date:        date,
		Type:        models.CalendarReminder,
		Description: description,
	}
	if err := s.Users.AddCalendarItem(ctx, userID, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Events returns the merged feed, sorted by date and windowed to six months
// around now: stored reminders plus deadline-bearing activity and exam
// content of the courses the user is enrolled in.
func (s *CalendarService) Events(ctx context.Context, userID string) ([]CalendarEvent, error) {
	now := time.Now()
	return s.eventsBetween(ctx, userID, now.Add(-eventWindow), now.Add(eventWindow))
}

// UpcomingWeek returns the next seven days of the feed.
func (s *CalendarService) UpcomingWeek(ctx context.Context, userID string) ([]CalendarEvent, error) {
	now := time.Now()
	return s.eventsBetween(ctx, userID, now, now.Add(7*24*time.Hour))
}

func (s *CalendarService) eventsBetween(ctx context.Context, userID string, from, to time.Time) ([]CalendarEvent, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(user.Calendar))
	for _, item := range user.Calendar {
		if item.Date.Before(from) || item.Date.After(to) {
			continue
		}
		events = append(events, CalendarEvent{
			Date:        item.Date,
			Type:        item.Type,
			Description: item.Description,
		})
	}

	ids := make([]string, 0, len(user.CoursesInProgress))
	for _, cp := range user.CoursesInProgress {
		ids = append(ids, cp.CourseID)
	}
	courses, err := s.Courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, cp := range user.CoursesInProgress {
		course, ok := courses[cp.CourseID]
		if !ok {
			continue
		}
		for _, event := range courseDeadlines(&course, cp) {
			if event.Date.Before(from) || event.Date.After(to) {
				continue
			}
			events = append(events, event)
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

// courseDeadlines lists the deadlines of a course's content that the user
// has not completed yet.
func courseDeadlines(course *models.Course, enrollment models.CourseProgress) []CalendarEvent {
	var events []CalendarEvent
	for mi := range course.Modules {
		for ci := range course.Modules[mi].Content {
			item := &course.Modules[mi].Content[ci]
			if item.Deadline == nil || enrollment.HasCompleted(item.ID) {
				continue
			}
			eventType := models.CalendarActivity
			if item.Type == models.ContentQuiz {
				eventType = models.CalendarExam
			}
			events = append(events, CalendarEvent{
				Date:        *item.Deadline,
				Type:        eventType,
				Description: item.Title,
				CourseID:    course.ID,
				CourseTitle: course.Title,
			})
		}
	}
	return events
}
