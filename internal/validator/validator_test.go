package validator

import (
	"testing"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuiz() models.Quiz {
	return models.Quiz{
		ID:                   "quiz-1",
		Title:                "Budget Basics",
		Category:             models.CategoryFinance,
		Difficulty:           models.DifficultyEasy,
		EstimatedTimeMinutes: 3,
		Questions: []models.Question{
			{
				ID:                 "q1",
				Text:               "Is saving good?",
				Type:               models.TrueFalse,
				Options:            []string{"True", "False"},
				CorrectAnswerIndex: 0,
				Points:             10,
			},
		},
	}
}

func fieldsOf(err error) []string {
	var fields []string
	if errs, ok := err.(ValidationErrors); ok {
		for _, e := range errs {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

func TestValidator_ValidQuiz(t *testing.T) {
	v := New()
	quiz := validQuiz()

	assert.NoError(t, v.Validate(&quiz))
	assert.NoError(t, v.Validate(quiz))
}

func TestValidator_StructTags(t *testing.T) {
	v := New()

	t.Run("UnknownCategory", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Category = "Sports"

		err := v.Validate(&quiz)
		require.Error(t, err)
		assert.Contains(t, fieldsOf(err), "category")
	})

	t.Run("UnknownDifficulty", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Difficulty = "Insane"

		err := v.Validate(&quiz)
		require.Error(t, err)
		assert.Contains(t, fieldsOf(err), "difficulty")
	})

	t.Run("UnknownQuestionType", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Questions[0].Type = "essay"

		err := v.Validate(&quiz)
		require.Error(t, err)
		assert.Contains(t, fieldsOf(err), "type")
	})
}

func TestValidator_QuizRules(t *testing.T) {
	v := New()

	t.Run("CorrectIndexOutOfRange", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Questions[0].CorrectAnswerIndex = 2

		err := v.Validate(&quiz)
		require.Error(t, err)
		assert.Contains(t, fieldsOf(err), "questions[0].correct_answer_index")
	})

	t.Run("DuplicateQuestionIds", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Questions = append(quiz.Questions, quiz.Questions[0])

		err := v.Validate(&quiz)
		require.Error(t, err)
		assert.Contains(t, fieldsOf(err), "questions[1].id")
	})

	t.Run("TrueFalseNeedsTwoOptions", func(t *testing.T) {
		q := validQuiz().Questions[0]
		q.Options = []string{"True", "False", "Maybe"}

		errs := v.Quiz().ValidateQuestion("", &q)
		require.Len(t, errs, 1)
		assert.Equal(t, "options", errs[0].Field)
	})

	t.Run("EmptyQuizIsAllowed", func(t *testing.T) {
		quiz := validQuiz()
		quiz.Questions = nil

		assert.NoError(t, v.Validate(&quiz))
	})
}

func TestValidator_ValidateCatalog(t *testing.T) {
	v := New()
	first := validQuiz()
	second := validQuiz()

	err := v.ValidateCatalog([]models.Quiz{first, second})
	require.Error(t, err)
	assert.Contains(t, fieldsOf(err), "quizzes[1].id")

	second.ID = "quiz-2"
	assert.NoError(t, v.ValidateCatalog([]models.Quiz{first, second}))
}

func TestQuizValidator_ValidateAnswerIndex(t *testing.T) {
	question := validQuiz().Questions[0]
	qv := NewQuizValidator()

	assert.NoError(t, qv.ValidateAnswerIndex(&question, 1))
	assert.Error(t, qv.ValidateAnswerIndex(&question, 2))
	assert.Error(t, qv.ValidateAnswerIndex(&question, -1))
}
