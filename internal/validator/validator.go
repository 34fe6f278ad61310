package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Validate performs struct validation and, for quizzes, the cross-field rules
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	switch value := s.(type) {
	case *models.Quiz:
		if errs := v.quizValidator.ValidateQuiz(value); len(errs) > 0 {
			return errs
		}
	case models.Quiz:
		if errs := v.quizValidator.ValidateQuiz(&value); len(errs) > 0 {
			return errs
		}
	}

	return nil
}

// ValidateCatalog validates every quiz and the uniqueness of quiz ids
func (v *Validator) ValidateCatalog(quizzes []models.Quiz) error {
	for i := range quizzes {
		if err := v.Validate(&quizzes[i]); err != nil {
			return err
		}
	}
	if errs := v.quizValidator.ValidateUniqueQuizIDs(quizzes); len(errs) > 0 {
		return errs
	}
	return nil
}

// Quiz returns the quiz validator
func (v *Validator) Quiz() *QuizValidator {
	return v.quizValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("quiz_category", validateQuizCategory)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	return models.DifficultyLevel(fl.Field().String()).IsValid()
}

func validateQuizCategory(fl validator.FieldLevel) bool {
	return models.QuizCategory(fl.Field().String()).IsValid()
}
