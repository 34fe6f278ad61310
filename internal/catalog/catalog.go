package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

// Catalog is the read-only source of quizzes and tips.
type Catalog interface {
	AllQuizzes() []models.Quiz
	AllTips() []models.FinancialTip
	QuizByID(id string) (*models.Quiz, bool)
	QuizzesByCategory(category models.QuizCategory) []models.Quiz
	QuizzesByDifficulty(difficulty models.DifficultyLevel) []models.Quiz
	Search(filter SearchFilter) []models.Quiz
	TodaysTip(now time.Time) (*models.FinancialTip, bool)
}

// SearchFilter narrows the quiz list. Zero values match everything.
type SearchFilter struct {
	Category   models.QuizCategory    `form:"category" json:"category"`
	Difficulty models.DifficultyLevel `form:"difficulty" json:"difficulty"`
	Text       string                 `form:"q" json:"q"`
}

type staticCatalog struct {
	quizzes []models.Quiz
	tips    []models.FinancialTip
	byID    map[string]int
	loc     *time.Location
}

// New validates the quizzes and builds an immutable catalog.
func New(quizzes []models.Quiz, tips []models.FinancialTip, loc *time.Location, v *validator.Validator) (Catalog, error) {
	if v != nil {
		if err := v.ValidateCatalog(quizzes); err != nil {
			return nil, fmt.Errorf("invalid quiz catalog: %w", err)
		}
	}
	if loc == nil {
		loc = time.Local
	}

	c := &staticCatalog{
		quizzes: append([]models.Quiz(nil), quizzes...),
		tips:    append([]models.FinancialTip(nil), tips...),
		byID:    make(map[string]int, len(quizzes)),
		loc:     loc,
	}
	for i, quiz := range c.quizzes {
		c.byID[quiz.ID] = i
	}
	return c, nil
}

// NewSample builds the catalog from the built-in sample data.
func NewSample(now time.Time, loc *time.Location, v *validator.Validator) (Catalog, error) {
	return New(SampleQuizzes(), SampleTips(now, loc), loc, v)
}

// NewFromFile loads quizzes from an xlsx file. An empty path falls back to the sample quizzes.
func NewFromFile(path string, now time.Time, loc *time.Location, v *validator.Validator, logger *slog.Logger) (Catalog, error) {
	if path == "" {
		return NewSample(now, loc, v)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	result, err := ImportQuizzesFromExcel(f, v)
	if err != nil {
		return nil, err
	}
	if result.ErrorCount > 0 {
		logger.Warn("Catalog file has invalid rows",
			"path", path,
			"error_count", result.ErrorCount)
	}
	if len(result.Quizzes) == 0 {
		logger.Warn("Catalog file has no quizzes, using sample catalog", "path", path)
		return NewSample(now, loc, v)
	}

	logger.Info("Loaded quiz catalog from file",
		"path", path,
		"quizzes", len(result.Quizzes))

	return New(result.Quizzes, SampleTips(now, loc), loc, v)
}

func (c *staticCatalog) AllQuizzes() []models.Quiz {
	return append([]models.Quiz(nil), c.quizzes...)
}

func (c *staticCatalog) AllTips() []models.FinancialTip {
	return append([]models.FinancialTip(nil), c.tips...)
}

func (c *staticCatalog) QuizByID(id string) (*models.Quiz, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	quiz := c.quizzes[i]
	return &quiz, true
}

func (c *staticCatalog) QuizzesByCategory(category models.QuizCategory) []models.Quiz {
	return c.Search(SearchFilter{Category: category})
}

func (c *staticCatalog) QuizzesByDifficulty(difficulty models.DifficultyLevel) []models.Quiz {
	return c.Search(SearchFilter{Difficulty: difficulty})
}

func (c *staticCatalog) Search(filter SearchFilter) []models.Quiz {
	result := make([]models.Quiz, 0, len(c.quizzes))
	for _, quiz := range c.quizzes {
		if filter.Category != "" && quiz.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && quiz.Difficulty != filter.Difficulty {
			continue
		}
		if !quiz.Matches(filter.Text) {
			continue
		}
		result = append(result, quiz)
	}
	return result
}

// TodaysTip returns the first tip dated on the same calendar day as now.
func (c *staticCatalog) TodaysTip(now time.Time) (*models.FinancialTip, bool) {
	for _, tip := range c.tips {
		if models.SameDay(tip.Date, now, c.loc) {
			t := tip
			return &t, true
		}
	}
	return nil, false
}
