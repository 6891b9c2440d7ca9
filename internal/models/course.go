package models

import "time"

// Content item types within a course module.
const (
	ContentWrittenLesson = 1
	ContentVideoLesson   = 2
	ContentQuiz          = 3
	ContentPDFActivity   = 4
)

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

type QuizQuestion struct {
	ID              string   `bson:"id" json:"id"`
	Question        string   `bson:"question" json:"question"`
	Options         []Option `bson:"options" json:"options"`
	CorrectOptionID string   `bson:"correct_option_id" json:"-"`
}

// HasOption reports whether the question's own options contain the given id.
func (q *QuizQuestion) HasOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

type ContentItem struct {
	ID          string         `bson:"id" json:"id"`
	Type        int            `bson:"type" json:"type"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Value       string         `bson:"value,omitempty" json:"value,omitempty"`
	Questions   []QuizQuestion `bson:"questions,omitempty" json:"questions,omitempty"`
	Deadline    *time.Time     `bson:"deadline,omitempty" json:"deadline,omitempty"`
}

// IsGraded reports whether completing this item carries a score.
func (ci *ContentItem) IsGraded() bool {
	return ci.Type == ContentQuiz || ci.Type == ContentPDFActivity
}

type Module struct {
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Content     []ContentItem `bson:"content" json:"content"`
}

type Course struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	IsActive    bool     `bson:"is_active" json:"isActive"`
	Title       string   `bson:"title" json:"title"`
	Image       string   `bson:"image" json:"image"`
	Description string   `bson:"description" json:"description"`
	Difficulty  int      `bson:"difficulty" json:"difficulty"`
	Category    string   `bson:"category" json:"category"`
	Duration    string   `bson:"duration" json:"duration"`
	HaveExam    bool     `bson:"have_exam" json:"haveExam"`
	ExamID      string   `bson:"exam_id,omitempty" json:"examId,omitempty"`
	Modules     []Module `bson:"modules" json:"modules"`
}

// TotalContentItems counts content items across all modules. It is the
// denominator of the progress percentage and is always taken from the
// course document as currently stored, never cached on an enrollment.
func (c *Course) TotalContentItems() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Content)
	}
	return total
}

// FindContent returns the content item with the given id, or nil.
func (c *Course) FindContent(contentID string) *ContentItem {
	for mi := range c.Modules {
		for ci := range c.Modules[mi].Content {
			if c.Modules[mi].Content[ci].ID == contentID {
				return &c.Modules[mi].Content[ci]
			}
		}
	}
	return nil
}
