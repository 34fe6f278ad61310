package models

import "strings"

type QuizCategory string

const (
	CategoryFinance       QuizCategory = "Finance"
	CategoryEntertainment QuizCategory = "Entertainment"
	CategoryMixed         QuizCategory = "Mixed"
	CategoryPuzzle        QuizCategory = "Puzzle"
)

// AllCategories returns the categories in display order.
func AllCategories() []QuizCategory {
	return []QuizCategory{CategoryFinance, CategoryEntertainment, CategoryMixed, CategoryPuzzle}
}

func (c QuizCategory) IsValid() bool {
	switch c {
	case CategoryFinance, CategoryEntertainment, CategoryMixed, CategoryPuzzle:
		return true
	}
	return false
}

// Icon returns the symbol name shown next to the category.
func (c QuizCategory) Icon() string {
	switch c {
	case CategoryFinance:
		return "dollarsign.circle.fill"
	case CategoryEntertainment:
		return "gamecontroller.fill"
	case CategoryMixed:
		return "star.fill"
	case CategoryPuzzle:
		return "puzzlepiece.fill"
	default:
		return ""
	}
}

// Color returns the category accent as a hex string.
func (c QuizCategory) Color() string {
	switch c {
	case CategoryFinance:
		return "#1ed55f"
	case CategoryEntertainment:
		return "#ffff03"
	case CategoryMixed:
		return "#ffc934"
	case CategoryPuzzle:
		return "#eb262f"
	default:
		return ""
	}
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

func AllDifficulties() []DifficultyLevel {
	return []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d DifficultyLevel) Color() string {
	switch d {
	case DifficultyEasy:
		return "#1ed55f"
	case DifficultyMedium:
		return "#ffc934"
	case DifficultyHard:
		return "#eb262f"
	default:
		return ""
	}
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Puzzle         QuestionType = "puzzle"
	Scenario       QuestionType = "scenario"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case MultipleChoice, TrueFalse, Puzzle, Scenario:
		return true
	}
	return false
}

// Question is immutable once it is part of the catalog.
type Question struct {
	ID                 string       `json:"id" validate:"required"`
	Text               string       `json:"text" validate:"required,max=1000"`
	Type               QuestionType `json:"type" validate:"required,question_type"`
	Options            []string     `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswerIndex int          `json:"correct_answer_index" validate:"min=0"`
	Explanation        string       `json:"explanation"`
	Points             int          `json:"points" validate:"required,gt=0"`
}

// IsCorrect reports whether the given option index is the correct answer.
func (q *Question) IsCorrect(index int) bool {
	return index == q.CorrectAnswerIndex
}

type Quiz struct {
	ID                   string          `json:"id" validate:"required"`
	Title                string          `json:"title" validate:"required,max=200"`
	Category             QuizCategory    `json:"category" validate:"required,quiz_category"`
	Difficulty           DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	Questions            []Question      `json:"questions" validate:"dive"`
	EstimatedTimeMinutes int             `json:"estimated_time_minutes" validate:"min=0"`
	Description          string          `json:"description" validate:"max=1000"`
}

// TotalPoints is the sum of points over all questions.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// Matches reports whether the search text occurs in the title or description, ignoring case.
func (q *Quiz) Matches(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(q.Title), needle) ||
		strings.Contains(strings.ToLower(q.Description), needle)
}

// QuizSummary is the list view of a quiz. It never carries answers.
type QuizSummary struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Category             QuizCategory    `json:"category"`
	CategoryIcon         string          `json:"category_icon"`
	CategoryColor        string          `json:"category_color"`
	Difficulty           DifficultyLevel `json:"difficulty"`
	DifficultyColor      string          `json:"difficulty_color"`
	QuestionCount        int             `json:"question_count"`
	TotalPoints          int             `json:"total_points"`
	EstimatedTimeMinutes int             `json:"estimated_time_minutes"`
}

func NewQuizSummary(q *Quiz) QuizSummary {
	return QuizSummary{
		ID:                   q.ID,
		Title:                q.Title,
		Description:          q.Description,
		Category:             q.Category,
		CategoryIcon:         q.Category.Icon(),
		CategoryColor:        q.Category.Color(),
		Difficulty:           q.Difficulty,
		DifficultyColor:      q.Difficulty.Color(),
		QuestionCount:        q.QuestionCount(),
		TotalPoints:          q.TotalPoints(),
		EstimatedTimeMinutes: q.EstimatedTimeMinutes,
	}
}
