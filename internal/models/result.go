package models

import (
	"math"
	"time"
)

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
)

// QuizResult summarises a completed session.
type QuizResult struct {
	QuizID              string    `json:"quiz_id"`
	QuizTitle           string    `json:"quiz_title"`
	Category            string    `json:"category"`
	Score               int       `json:"score"`
	TotalPossiblePoints int       `json:"total_possible_points"`
	TimeSpentSeconds    float64   `json:"time_spent_seconds"`
	CorrectAnswerCount  int       `json:"correct_answer_count"`
	TotalQuestionCount  int       `json:"total_question_count"`
	CompletedAt         time.Time `json:"completed_at"`
	Percentage          float64   `json:"percentage"`
	Grade               Grade     `json:"grade"`
}

// NewQuizResult derives percentage and grade from the raw counts.
func NewQuizResult(quiz *Quiz, score int, timeSpent time.Duration, correct int, completedAt time.Time) *QuizResult {
	total := quiz.TotalPoints()
	pct := Percentage(score, total)
	if timeSpent < 0 {
		timeSpent = 0
	}
	return &QuizResult{
		QuizID:              quiz.ID,
		QuizTitle:           quiz.Title,
		Category:            string(quiz.Category),
		Score:               score,
		TotalPossiblePoints: total,
		TimeSpentSeconds:    timeSpent.Seconds(),
		CorrectAnswerCount:  correct,
		TotalQuestionCount:  quiz.QuestionCount(),
		CompletedAt:         completedAt,
		Percentage:          pct,
		Grade:               GradeFor(pct),
	}
}

// Percentage is score over total times 100, clamped to [0,100].
// A zero total yields 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(score) / float64(total) * 100
	return math.Max(0, math.Min(100, pct))
}

// GradeFor buckets a percentage into a letter grade.
func GradeFor(percentage float64) Grade {
	switch {
	case percentage >= 90:
		return GradeAPlus
	case percentage >= 80:
		return GradeA
	case percentage >= 70:
		return GradeB
	case percentage >= 60:
		return GradeC
	default:
		return GradeD
	}
}
