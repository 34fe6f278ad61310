package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"github.com/SAP-F-2025/quizzone/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_LoadMissing(t *testing.T) {
	repo := repositories.NewProgressRepository(memory.NewKeyValueMemory(), "UserProgress")

	_, err := repo.Load(context.Background())
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestProgressRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueMemory()
	repo := repositories.NewProgressRepository(store, "UserProgress")

	played := time.Date(2025, 2, 3, 18, 45, 0, 0, time.UTC)
	progress := models.NewUserProgress()
	progress.CompletedQuizIDs = []string{"basic-financial-literacy", "basic-financial-literacy"}
	progress.TotalScore = 60
	progress.Streak = 1
	progress.LastPlayedDate = &played
	progress.Achievements[0].Progress = 2
	progress.Achievements[0].IsUnlocked = true
	progress.Achievements[0].UnlockedDate = &played

	require.NoError(t, repo.Save(ctx, progress))
	assert.Equal(t, 1, store.SaveCount())

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, progress.CompletedQuizIDs, loaded.CompletedQuizIDs)
	assert.Equal(t, 60, loaded.TotalScore)
	require.NotNil(t, loaded.LastPlayedDate)
	assert.True(t, played.Equal(*loaded.LastPlayedDate))
	require.Len(t, loaded.Achievements, 5)
	assert.Equal(t, models.AchievementFirstSteps, loaded.Achievements[0].ID)
	assert.Nil(t, loaded.Achievements[1].UnlockedDate)
}

func TestEncodeDecodeProgress(t *testing.T) {
	played := time.Date(2025, 2, 3, 18, 45, 0, 0, time.UTC)
	progress := models.NewUserProgress()
	progress.CompletedQuizIDs = append(progress.CompletedQuizIDs, "basic-financial-literacy")
	progress.RecordCompletion(models.CategoryFinance)
	progress.TotalScore = 30
	progress.Streak = 1
	progress.LongestStreak = 1
	progress.LastPlayedDate = &played
	progress.Achievements[0].Progress = 1
	progress.Achievements[0].IsUnlocked = true
	progress.Achievements[0].UnlockedDate = &played

	snapshot := progress.Clone()
	data, err := repositories.EncodeProgress(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"preferred_categories":[]`)

	decoded, err := repositories.DecodeProgress(data)
	require.NoError(t, err)
	assert.Equal(t, progress, decoded)
}

func TestDecodeProgress(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		_, err := repositories.DecodeProgress([]byte("{not json"))
		assert.ErrorIs(t, err, repositories.ErrCorruptRecord)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := repositories.DecodeProgress(nil)
		assert.ErrorIs(t, err, repositories.ErrCorruptRecord)
	})

	t.Run("MissingFieldsAreNormalised", func(t *testing.T) {
		progress, err := repositories.DecodeProgress([]byte(`{"total_score": 40}`))
		require.NoError(t, err)

		assert.Equal(t, 40, progress.TotalScore)
		assert.NotNil(t, progress.CompletedQuizIDs)
		assert.Empty(t, progress.Achievements)
		assert.Equal(t, models.DifficultyEasy, progress.PreferredDifficulty)
		assert.Nil(t, progress.LastPlayedDate)
	})
}
