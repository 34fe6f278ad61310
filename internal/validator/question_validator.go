package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// QuizValidator handles the cross-field rules struct tags cannot express
type QuizValidator struct{}

// NewQuizValidator creates a new quiz validator
func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// ValidateQuestion validates a single question. Field names carry the given prefix.
func (v *QuizValidator) ValidateQuestion(prefix string, question *models.Question) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(question.Text) == "" {
		errs = append(errs, newRuleError(prefix+"text", "is required", "required", question.Text))
	}

	if len(question.Options) < 2 {
		errs = append(errs, newRuleError(prefix+"options", "must be at least 2", "min", len(question.Options)))
	}

	if question.Type == models.TrueFalse && len(question.Options) != 2 {
		errs = append(errs, newRuleError(prefix+"options", "true/false questions need exactly 2 options", "len", len(question.Options)))
	}

	if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Options) {
		errs = append(errs, newRuleError(prefix+"correct_answer_index", "must point at one of the question options", "answer_index", question.CorrectAnswerIndex))
	}

	if question.Points <= 0 {
		errs = append(errs, newRuleError(prefix+"points", "must be greater than 0", "gt", question.Points))
	}

	return errs
}

// ValidateQuiz validates a quiz and all of its questions
func (v *QuizValidator) ValidateQuiz(quiz *models.Quiz) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(quiz.ID) == "" {
		errs = append(errs, newRuleError("id", "is required", "required", quiz.ID))
	}

	if quiz.EstimatedTimeMinutes < 0 {
		errs = append(errs, newRuleError("estimated_time_minutes", "must be at least 0", "min", quiz.EstimatedTimeMinutes))
	}

	seen := make(map[string]bool, len(quiz.Questions))
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		prefix := fmt.Sprintf("questions[%d].", i)

		if seen[question.ID] {
			errs = append(errs, newRuleError(prefix+"id", "must not contain duplicate ids", "unique_ids", question.ID))
		}
		seen[question.ID] = true

		errs = append(errs, v.ValidateQuestion(prefix, question)...)
	}

	return errs
}

// ValidateUniqueQuizIDs checks that no two quizzes share an id
func (v *QuizValidator) ValidateUniqueQuizIDs(quizzes []models.Quiz) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(quizzes))

	for i, quiz := range quizzes {
		if seen[quiz.ID] {
			errs = append(errs, newRuleError(fmt.Sprintf("quizzes[%d].id", i), "must not contain duplicate ids", "unique_ids", quiz.ID))
		}
		seen[quiz.ID] = true
	}

	return errs
}

// ValidateAnswerIndex checks an answer selection against a question
func (v *QuizValidator) ValidateAnswerIndex(question *models.Question, index int) error {
	if index < 0 || index >= len(question.Options) {
		return ValidationErrors{newRuleError("index", "must point at one of the question options", "answer_index", index)}
	}
	return nil
}
