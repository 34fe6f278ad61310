package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of progress events
type EventType string

const (
	// Session events
	EventQuizStarted   EventType = "quiz.started"
	EventQuizCompleted EventType = "quiz.completed"

	// Progress events
	EventAchievementUnlocked EventType = "achievement.unlocked"
	EventStreakUpdated       EventType = "streak.updated"
	EventOnboardingCompleted EventType = "onboarding.completed"
)

const (
	eventSource  = "quizzone"
	eventVersion = "1.0"
)

// ProgressEvent is the envelope for all published events
type ProgressEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewProgressEvent wraps data in an envelope with a fresh id
func NewProgressEvent(eventType EventType, data interface{}, at time.Time) *ProgressEvent {
	return &ProgressEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: at,
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Event payloads

type QuizStartedEvent struct {
	SessionID     string `json:"session_id"`
	QuizID        string `json:"quiz_id"`
	QuizTitle     string `json:"quiz_title"`
	QuestionCount int    `json:"question_count"`
	TimeLimit     int    `json:"time_limit_seconds"`
}

type QuizCompletedEvent struct {
	QuizID          string `json:"quiz_id"`
	QuizTitle       string `json:"quiz_title"`
	Category        string `json:"category"`
	Score           int    `json:"score"`
	TotalScore      int    `json:"total_score"`
	CompletedCount  int    `json:"completed_count"`
	Level           int    `json:"level"`
	NewAchievements int    `json:"new_achievements"`
}

type AchievementUnlockedEvent struct {
	AchievementID string    `json:"achievement_id"`
	Title         string    `json:"title"`
	Icon          string    `json:"icon"`
	Progress      int       `json:"progress"`
	Requirement   int       `json:"requirement"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

type StreakUpdatedEvent struct {
	PreviousStreak int `json:"previous_streak"`
	Streak         int `json:"streak"`
	DaysSinceLast  int `json:"days_since_last"`
}

type OnboardingCompletedEvent struct {
	PreferredCategories []string `json:"preferred_categories"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
}
