package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("categories", "must not be empty", []string{})

	assert.Equal(t, "categories", err.Field)
	assert.Equal(t, "must not be empty", err.Message)
	assert.Equal(t, "validation error on field 'categories': must not be empty", err.Error())
}

func TestValidationErrorsMessage(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("index", "must be at least 0", -1))
	assert.Equal(t, "validation failed: index must be at least 0", errs.Error())

	errs = append(errs, *NewValidationErrorWithRule("difficulty", "must be Easy, Medium, or Hard", "difficulty_level", "Insane"))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
	assert.Equal(t, "difficulty_level", errs[1].Rule)
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Index  int    `validate:"min=0"`
		QuizID string `validate:"required"`
		Points int    `validate:"gt=0"`
	}

	err := validator.New().Struct(payload{Index: -1})
	require.Error(t, err)

	errs := ToValidationErrors(err)
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "must be at least 0", byField["Index"].Message)
	assert.Equal(t, "is required", byField["QuizID"].Message)
	assert.Equal(t, "must be greater than 0", byField["Points"].Message)
}

func TestToValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, ToValidationErrors(assert.AnError))
}
