package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// ErrCorruptRecord marks a stored record that could not be decoded.
var ErrCorruptRecord = errors.New("stored progress record is malformed")

type progressRepository struct {
	store KeyValueStore
	key   string
}

func NewProgressRepository(store KeyValueStore, key string) ProgressRepository {
	return &progressRepository{
		store: store,
		key:   key,
	}
}

func (r *progressRepository) Load(ctx context.Context) (*models.UserProgress, error) {
	data, err := r.store.Load(ctx, r.key)
	if err != nil {
		return nil, err
	}

	progress, err := DecodeProgress(data)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	data, err := EncodeProgress(progress)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// EncodeProgress serialises the record as JSON. Optional dates become null.
func EncodeProgress(progress *models.UserProgress) ([]byte, error) {
	data, err := json.Marshal(progress)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}
	return data, nil
}

// DecodeProgress parses a stored record. Nil slices are normalised to empty ones.
func DecodeProgress(data []byte) (*models.UserProgress, error) {
	if len(data) == 0 {
		return nil, ErrCorruptRecord
	}

	var progress models.UserProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	if progress.CompletedQuizIDs == nil {
		progress.CompletedQuizIDs = []string{}
	}
	if progress.PreferredCategories == nil {
		progress.PreferredCategories = []models.QuizCategory{}
	}
	if progress.Achievements == nil {
		progress.Achievements = []models.Achievement{}
	}
	if progress.PreferredDifficulty == "" {
		progress.PreferredDifficulty = models.DifficultyEasy
	}
	if progress.TotalScore < 0 {
		progress.TotalScore = 0
	}
	if progress.Streak < 0 {
		progress.Streak = 0
	}
	return &progress, nil
}
