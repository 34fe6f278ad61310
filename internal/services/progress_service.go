package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"github.com/SAP-F-2025/quizzone/internal/state"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

// ProgressService owns the persisted progress record of the local user
type ProgressService interface {
	// Lifecycle
	Load(ctx context.Context) (*models.UserProgress, error)
	Flush(ctx context.Context) error
	Close() error

	// Mutations
	CompleteQuiz(ctx context.Context, quiz *models.Quiz, score int) ([]models.Achievement, error)
	CompleteOnboarding(ctx context.Context, req *OnboardingRequest) (*models.UserProgress, error)

	// Queries
	Progress() *models.UserProgress
	Summary() *models.ProgressSummary
	QuizzesByCategory(category models.QuizCategory) []models.Quiz
	QuizzesByDifficulty(difficulty models.DifficultyLevel) []models.Quiz
	Subscribe(fn func(*models.UserProgress)) (unsubscribe func())
}

// OnboardingRequest carries the preferences chosen on first launch
type OnboardingRequest struct {
	Categories []models.QuizCategory  `json:"categories" validate:"max=4,dive,quiz_category"`
	Difficulty models.DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
}

type progressService struct {
	repo      repositories.ProgressRepository
	catalog   catalog.Catalog
	publisher events.EventPublisher
	validator *validator.Validator
	clock     Clock
	loc       *time.Location
	logger    *ServiceLogger
	writer    *progressWriter

	// mu serializes mutations; readers go through the container.
	mu        sync.Mutex
	progress  *models.UserProgress
	container *state.Container[*models.UserProgress]

	// writesHeld is set while the stored record could not be read, so the
	// fresh in-memory record never overwrites it.
	writesHeld bool
}

// ProgressServiceConfig tunes the progress service
type ProgressServiceConfig struct {
	Location       *time.Location
	Clock          Clock
	PersistTimeout time.Duration
	EnableDebug    bool
}

func NewProgressService(
	repo repositories.ProgressRepository,
	cat catalog.Catalog,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config ProgressServiceConfig,
) ProgressService {
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Clock == nil {
		config.Clock = SystemClock()
	}

	serviceLogger := NewServiceLogger(logger, LogConfig{
		Service:     "quizzone",
		Component:   "progress",
		EnableDebug: config.EnableDebug,
	})

	initial := models.NewUserProgress()
	return &progressService{
		repo:      repo,
		catalog:   cat,
		publisher: publisher,
		validator: validator,
		clock:     config.Clock,
		loc:       config.Location,
		logger:    serviceLogger,
		writer:    newProgressWriter(repo, serviceLogger, config.PersistTimeout),
		progress:  initial,
		container: state.NewContainer(initial.Clone()),
	}
}

// ===== LIFECYCLE =====

// Load replaces the in-memory record with the stored one. A missing or
// unreadable record yields a fresh progress. Storage failures are returned
// after the fresh record has been installed, and writes stay held until a
// later Load succeeds.
func (s *progressService) Load(ctx context.Context) (*models.UserProgress, error) {
	op := s.logger.WithOperation(ctx, "load_progress")

	loaded, err := s.repo.Load(ctx)
	var loadErr error
	switch {
	case err == nil:
	case repositories.IsNotFoundError(err):
		s.logger.Logger().Info("No stored progress, starting fresh")
		loaded = models.NewUserProgress()
	case errors.Is(err, repositories.ErrCorruptRecord):
		s.logger.Logger().Warn("Stored progress is unreadable, starting fresh", "error", err)
		loaded = models.NewUserProgress()
	default:
		loadErr = fmt.Errorf("failed to load progress: %w", err)
		loaded = models.NewUserProgress()
	}

	migrateCounters(loaded, s.countCategories)

	s.mu.Lock()
	s.progress = loaded
	s.writesHeld = loadErr != nil
	snapshot := loaded.Clone()
	s.container.Set(snapshot)
	s.mu.Unlock()

	if loadErr != nil {
		s.logger.Logger().Warn("Progress writes held until storage can be read")
	}
	op.LogResult("progress", "user_progress", loadErr)
	return snapshot.Clone(), loadErr
}

func (s *progressService) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

func (s *progressService) Close() error {
	return s.writer.Close()
}

// ===== MUTATIONS =====

// CompleteQuiz records a finished play-through and returns the achievements it unlocked
func (s *progressService) CompleteQuiz(ctx context.Context, quiz *models.Quiz, score int) ([]models.Achievement, error) {
	op := s.logger.WithOperation(ctx, "complete_quiz")
	if quiz == nil {
		err := NewValidationError("quiz", "is required", nil)
		op.LogResult("", "quiz", err)
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	p := s.progress
	previousStreak := p.Streak

	p.CompletedQuizIDs = append(p.CompletedQuizIDs, quiz.ID)
	p.RecordCompletion(quiz.Category)
	if score > 0 {
		p.TotalScore += score
	}
	daysSince := applyStreak(p, now, s.loc)
	p.LongestStreak = max(p.LongestStreak, p.Streak)
	p.LastPlayedDate = &now

	unlocked := evaluateAchievements(p, now)

	snapshot := p.Clone()
	s.container.Set(snapshot)
	s.persistLocked(snapshot)
	s.mu.Unlock()

	s.publish(ctx, events.EventQuizCompleted, events.QuizCompletedEvent{
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		Category:        string(quiz.Category),
		Score:           score,
		TotalScore:      snapshot.TotalScore,
		CompletedCount:  len(snapshot.CompletedQuizIDs),
		Level:           snapshot.Level(),
		NewAchievements: len(unlocked),
	}, now)

	if snapshot.Streak != previousStreak {
		s.publish(ctx, events.EventStreakUpdated, events.StreakUpdatedEvent{
			PreviousStreak: previousStreak,
			Streak:         snapshot.Streak,
			DaysSinceLast:  daysSince,
		}, now)
	}

	for _, a := range unlocked {
		s.publish(ctx, events.EventAchievementUnlocked, events.AchievementUnlockedEvent{
			AchievementID: a.ID,
			Title:         a.Title,
			Icon:          a.Icon,
			Progress:      a.Progress,
			Requirement:   a.Requirement,
			UnlockedAt:    now,
		}, now)
	}

	op.LogResult(quiz.ID, "quiz", nil)
	return unlocked, nil
}

// CompleteOnboarding stores the first-launch preferences. It can only succeed once.
func (s *progressService) CompleteOnboarding(ctx context.Context, req *OnboardingRequest) (*models.UserProgress, error) {
	op := s.logger.WithOperation(ctx, "complete_onboarding")
	if req == nil {
		err := NewValidationError("request", "is required", nil)
		op.LogResult("", "onboarding", err)
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		op.LogResult("", "onboarding", err)
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	p := s.progress
	if p.OnboardingCompleted {
		s.mu.Unlock()
		err := NewBusinessRuleError("onboarding_once", "onboarding has already been completed", nil)
		op.LogResult("", "onboarding", err)
		return nil, err
	}

	p.PreferredCategories = uniqueCategories(req.Categories)
	p.PreferredDifficulty = req.Difficulty
	p.OnboardingCompleted = true

	snapshot := p.Clone()
	s.container.Set(snapshot)
	s.persistLocked(snapshot)
	s.mu.Unlock()

	categories := make([]string, len(snapshot.PreferredCategories))
	for i, c := range snapshot.PreferredCategories {
		categories[i] = string(c)
	}
	s.publish(ctx, events.EventOnboardingCompleted, events.OnboardingCompletedEvent{
		PreferredCategories: categories,
		PreferredDifficulty: string(snapshot.PreferredDifficulty),
	}, now)

	op.LogResult("", "onboarding", nil)
	return snapshot.Clone(), nil
}

// ===== QUERIES =====

func (s *progressService) Progress() *models.UserProgress {
	return s.container.Get().Clone()
}

func (s *progressService) Summary() *models.ProgressSummary {
	return buildSummary(s.container.Get())
}

func (s *progressService) QuizzesByCategory(category models.QuizCategory) []models.Quiz {
	return s.catalog.QuizzesByCategory(category)
}

func (s *progressService) QuizzesByDifficulty(difficulty models.DifficultyLevel) []models.Quiz {
	return s.catalog.QuizzesByDifficulty(difficulty)
}

// Subscribe registers fn for every published progress snapshot.
// fn must not call mutating methods of the service.
func (s *progressService) Subscribe(fn func(*models.UserProgress)) func() {
	return s.container.Subscribe(func(p *models.UserProgress) {
		fn(p.Clone())
	})
}

// ===== HELPERS =====

func (s *progressService) publish(ctx context.Context, eventType events.EventType, data interface{}, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := events.NewProgressEvent(eventType, data, at)
	if err := s.publisher.PublishProgressEvent(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish progress event",
			"event_type", eventType,
			"event_id", event.ID,
			"error", err)
	}
}

func (s *progressService) persistLocked(snapshot *models.UserProgress) {
	if s.writesHeld {
		s.logger.Logger().Debug("Skipping progress write while storage is unreadable")
		return
	}
	s.writer.Enqueue(snapshot)
}

// countCategories rebuilds per-category counts for records written before
// they were tracked. Ids the catalog no longer knows are not counted.
func (s *progressService) countCategories(ids []string) map[models.QuizCategory]int {
	counts := make(map[models.QuizCategory]int)
	if s.catalog == nil {
		return counts
	}
	for _, id := range ids {
		if quiz, ok := s.catalog.QuizByID(id); ok {
			counts[quiz.Category]++
		}
	}
	return counts
}
