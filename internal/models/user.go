package models

import (
	"maps"
	"math"
	"time"
)

// Stable achievement identifiers. Evaluation is keyed on these, never on titles.
const (
	AchievementFirstSteps      = "first-steps"
	AchievementQuizMaster      = "quiz-master"
	AchievementFinancialGuru   = "financial-guru"
	AchievementStreakChampion  = "streak-champion"
	AchievementHighScorer      = "high-scorer"
	pointsPerLevel             = 100
	defaultPreferredDifficulty = DifficultyEasy
)

type Achievement struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Requirement  int        `json:"requirement"`
	Progress     int        `json:"progress"`
	IsUnlocked   bool       `json:"is_unlocked"`
	UnlockedDate *time.Time `json:"unlocked_date"`
}

// ProgressPercentage is progress over requirement, capped at 1.
func (a *Achievement) ProgressPercentage() float64 {
	if a.Requirement <= 0 {
		return 1
	}
	return math.Min(float64(a.Progress)/float64(a.Requirement), 1)
}

// DefaultAchievements returns the canonical achievement set in display order.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchievementFirstSteps, Title: "First Steps", Description: "Complete your first quiz", Icon: "star.fill", Requirement: 1},
		{ID: AchievementQuizMaster, Title: "Quiz Master", Description: "Complete 10 quizzes", Icon: "crown.fill", Requirement: 10},
		{ID: AchievementFinancialGuru, Title: "Financial Guru", Description: "Complete 5 finance quizzes", Icon: "dollarsign.circle.fill", Requirement: 5},
		{ID: AchievementStreakChampion, Title: "Streak Champion", Description: "Maintain a 7-day streak", Icon: "flame.fill", Requirement: 7},
		{ID: AchievementHighScorer, Title: "High Scorer", Description: "Reach 1000 total points", Icon: "trophy.fill", Requirement: 1000},
	}
}

// UserProgress is the persisted record of the single local user.
type UserProgress struct {
	CompletedQuizIDs    []string        `json:"completed_quiz_ids"`
	TotalScore          int             `json:"total_score"`
	Achievements        []Achievement   `json:"achievements"`
	Streak              int             `json:"streak"`
	LastPlayedDate      *time.Time      `json:"last_played_date"`
	PreferredCategories []QuizCategory  `json:"preferred_categories"`
	PreferredDifficulty DifficultyLevel `json:"preferred_difficulty"`
	OnboardingCompleted bool            `json:"onboarding_completed"`

	// Counters behind the achievements. They only grow, whatever the
	// catalog later contains or however the current streak moves.
	CategoryCompletions map[QuizCategory]int `json:"category_completions"`
	LongestStreak       int                  `json:"longest_streak"`
}

// NewUserProgress returns a fresh record seeded with the canonical achievements.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		CompletedQuizIDs:    []string{},
		Achievements:        DefaultAchievements(),
		PreferredCategories: []QuizCategory{},
		PreferredDifficulty: defaultPreferredDifficulty,
		CategoryCompletions: map[QuizCategory]int{},
	}
}

// Clone returns a deep copy safe to hand out to observers.
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	out := *p
	out.CompletedQuizIDs = cloneSlice(p.CompletedQuizIDs)
	out.PreferredCategories = cloneSlice(p.PreferredCategories)
	out.CategoryCompletions = maps.Clone(p.CategoryCompletions)
	out.Achievements = cloneSlice(p.Achievements)
	for i, a := range out.Achievements {
		if a.UnlockedDate != nil {
			out.Achievements[i].UnlockedDate = timePtr(*a.UnlockedDate)
		}
	}
	if p.LastPlayedDate != nil {
		out.LastPlayedDate = timePtr(*p.LastPlayedDate)
	}
	return &out
}

// RecordCompletion counts one finished quiz of the given category.
func (p *UserProgress) RecordCompletion(category QuizCategory) {
	if p.CategoryCompletions == nil {
		p.CategoryCompletions = make(map[QuizCategory]int)
	}
	p.CategoryCompletions[category]++
}

// Achievement looks up an achievement by id.
func (p *UserProgress) Achievement(id string) (*Achievement, bool) {
	for i := range p.Achievements {
		if p.Achievements[i].ID == id {
			return &p.Achievements[i], true
		}
	}
	return nil, false
}

func (p *UserProgress) UnlockedCount() int {
	count := 0
	for _, a := range p.Achievements {
		if a.IsUnlocked {
			count++
		}
	}
	return count
}

// Level starts at 1 and rises every 100 points.
func (p *UserProgress) Level() int {
	return LevelForScore(p.TotalScore)
}

func LevelForScore(score int) int {
	if score < 0 {
		score = 0
	}
	return max(1, score/pointsPerLevel+1)
}

// NextLevelRequirement is the score at which the following level begins.
func NextLevelRequirement(level int) int {
	return level * pointsPerLevel
}

// LevelProgress is the fraction of the current level already earned.
func LevelProgress(score int) float64 {
	if score < 0 {
		score = 0
	}
	return float64(score%pointsPerLevel) / float64(pointsPerLevel)
}

// ProgressSummary backs the profile view.
type ProgressSummary struct {
	TotalScore            int                  `json:"total_score"`
	CompletedCount        int                  `json:"completed_count"`
	DistinctQuizzes       int                  `json:"distinct_quizzes"`
	Streak                int                  `json:"streak"`
	LongestStreak         int                  `json:"longest_streak"`
	UnlockedAchievements  int                  `json:"unlocked_achievements"`
	TotalAchievements     int                  `json:"total_achievements"`
	Level                 int                  `json:"level"`
	NextLevelRequirement  int                  `json:"next_level_requirement"`
	LevelProgress         float64              `json:"level_progress"`
	CompletionsByCategory map[QuizCategory]int `json:"completions_by_category"`
	LastPlayedDate        *time.Time           `json:"last_played_date,omitempty"`
}
