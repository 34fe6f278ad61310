package services

import (
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// applyStreak advances p.Streak for a completion at now and returns the
// day gap since the previous play, or -1 when there was none.
// A clock that moved backwards counts as the same day.
func applyStreak(p *models.UserProgress, now time.Time, loc *time.Location) int {
	if p.LastPlayedDate == nil {
		p.Streak = 1
		return -1
	}

	days := models.DaysBetween(*p.LastPlayedDate, now, loc)
	switch {
	case days <= 0:
		if p.Streak < 1 {
			p.Streak = 1
		}
		return 0
	case days == 1:
		p.Streak++
	default:
		p.Streak = 1
	}
	return days
}

// migrateCounters fills the achievement counters of records written before
// they were persisted. Stored achievement progress is the lower bound so an
// unlocked achievement keeps progress >= requirement.
func migrateCounters(p *models.UserProgress, countCategories func([]string) map[models.QuizCategory]int) {
	if p.CategoryCompletions == nil {
		p.CategoryCompletions = countCategories(p.CompletedQuizIDs)
	}
	if guru, ok := p.Achievement(models.AchievementFinancialGuru); ok {
		p.CategoryCompletions[models.CategoryFinance] = max(p.CategoryCompletions[models.CategoryFinance], guru.Progress)
	}

	p.LongestStreak = max(p.LongestStreak, p.Streak)
	if champion, ok := p.Achievement(models.AchievementStreakChampion); ok {
		p.LongestStreak = max(p.LongestStreak, champion.Progress)
	}
}

// evaluateAchievements refreshes achievement progress and returns the ones
// that became unlocked. Unlocked achievements never relock.
func evaluateAchievements(p *models.UserProgress, now time.Time) []models.Achievement {
	var unlocked []models.Achievement
	for i := range p.Achievements {
		a := &p.Achievements[i]

		var value int
		switch a.ID {
		case models.AchievementFirstSteps, models.AchievementQuizMaster:
			value = len(p.CompletedQuizIDs)
		case models.AchievementFinancialGuru:
			value = p.CategoryCompletions[models.CategoryFinance]
		case models.AchievementStreakChampion:
			value = p.LongestStreak
		case models.AchievementHighScorer:
			value = p.TotalScore
		default:
			continue
		}

		a.Progress = value
		if !a.IsUnlocked && value >= a.Requirement {
			a.IsUnlocked = true
			unlockedAt := now
			a.UnlockedDate = &unlockedAt
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}

func buildSummary(p *models.UserProgress) *models.ProgressSummary {
	summary := &models.ProgressSummary{
		TotalScore:            p.TotalScore,
		CompletedCount:        len(p.CompletedQuizIDs),
		Streak:                p.Streak,
		LongestStreak:         p.LongestStreak,
		UnlockedAchievements:  p.UnlockedCount(),
		TotalAchievements:     len(p.Achievements),
		Level:                 p.Level(),
		NextLevelRequirement:  models.NextLevelRequirement(p.Level()),
		LevelProgress:         models.LevelProgress(p.TotalScore),
		CompletionsByCategory: make(map[models.QuizCategory]int, len(p.CategoryCompletions)),
	}
	if p.LastPlayedDate != nil {
		last := *p.LastPlayedDate
		summary.LastPlayedDate = &last
	}
	for category, count := range p.CategoryCompletions {
		summary.CompletionsByCategory[category] = count
	}

	distinct := make(map[string]struct{}, len(p.CompletedQuizIDs))
	for _, id := range p.CompletedQuizIDs {
		distinct[id] = struct{}{}
	}
	summary.DistinctQuizzes = len(distinct)
	return summary
}

func uniqueCategories(categories []models.QuizCategory) []models.QuizCategory {
	seen := make(map[models.QuizCategory]struct{}, len(categories))
	out := make([]models.QuizCategory, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
