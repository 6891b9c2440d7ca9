package service

import "learning-service/internal/models"

// Answer is one submitted (question, selected option) pair.
type Answer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// GradeResult is the outcome of grading one quiz or exam submission.
type GradeResult struct {
	Score          int `json:"score"`
	CorrectCount   int `json:"correctCount"`
	TotalQuestions int `json:"totalQuestions"`
}

// Grade scores a submission against the stored questions. Matching is by
// question id against a precomputed answer key; unanswered or unknown
// questions count as incorrect. The score is an integer percentage rounded
// half up, 0 when the question set is empty. Inputs are never mutated.
func Grade(questions []models.QuizQuestion, answers []Answer) GradeResult {
	total := len(questions)
	if total == 0 {
		return GradeResult{}
	}

	key := make(map[string]string, total)
	for _, q := range questions {
		key[q.ID] = q.CorrectOptionID
	}

	seen := make(map[string]bool, len(answers))
	correct := 0
	for _, a := range answers {
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		if want, ok := key[a.QuestionID]; ok && want == a.SelectedOptionID {
			correct++
		}
	}

	return GradeResult{
		Score:          roundPercent(correct, total),
		CorrectCount:   correct,
		TotalQuestions: total,
	}
}

// roundPercent is round(100 * part / total), half up. Shared by the scoring
// engine, progress recomputation and the aggregators so every percentage in
// the system rounds the same way.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (100*part + total/2) / total
}

// roundRatio is round(sum / n), half up, used for plain averages.
func roundRatio(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return (sum + n/2) / n
}
