package models

import "time"

// Exam is the final assessment tied 1:1 to a course.
type Exam struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	Title     string         `bson:"title" json:"title"`
	CourseID  string         `bson:"course_id" json:"courseId"`
	Questions []QuizQuestion `bson:"questions" json:"questions"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
}

// ExamResult is stored on the user document after a final exam submission.
type ExamResult struct {
	ExamID      string    `bson:"exam_id" json:"examId"`
	CourseID    string    `bson:"course_id" json:"courseId"`
	Score       int       `bson:"score" json:"score"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
}
