package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/state"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

// SessionService drives a single quiz play-through.
// Rejected intents return the current snapshot together with the reason and
// leave the engine untouched.
type SessionService interface {
	// Intents
	StartQuiz(ctx context.Context, quizID string) (models.SessionSnapshot, error)
	StartSession(ctx context.Context, quiz *models.Quiz) (models.SessionSnapshot, error)
	SelectAnswer(ctx context.Context, index int) (models.SessionSnapshot, error)
	SubmitAnswer(ctx context.Context) (models.SessionSnapshot, error)
	NextQuestion(ctx context.Context) (models.SessionSnapshot, error)
	ResetQuiz(ctx context.Context) models.SessionSnapshot

	// Observation
	Snapshot() models.SessionSnapshot
	Result() (*models.QuizResult, error)
	Subscribe(fn func(models.SessionSnapshot)) (unsubscribe func())

	Close() error
}

// SessionServiceConfig tunes the session engine
type SessionServiceConfig struct {
	Clock        Clock
	TickInterval time.Duration
	EnableDebug  bool
}

type sessionService struct {
	catalog   catalog.Catalog
	progress  ProgressService
	publisher events.EventPublisher
	validator *validator.Validator
	clock     Clock
	tick      time.Duration
	logger    *ServiceLogger

	mu        sync.Mutex
	session   *quizSession
	countdown *countdown
	closed    bool
	container *state.Container[models.SessionSnapshot]
}

// quizSession is the mutable state of one play-through
type quizSession struct {
	id               string
	quiz             models.Quiz
	state            models.SessionState
	index            int
	selected         *int
	score            int
	answers          []models.AnswerRecord
	remainingSeconds int
	startedAt        time.Time
	completedAt      time.Time
	progressRecorded bool
}

func NewSessionService(
	cat catalog.Catalog,
	progress ProgressService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config SessionServiceConfig,
) SessionService {
	if config.Clock == nil {
		config.Clock = SystemClock()
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	return &sessionService{
		catalog:   cat,
		progress:  progress,
		publisher: publisher,
		validator: validator,
		clock:     config.Clock,
		tick:      config.TickInterval,
		logger: NewServiceLogger(logger, LogConfig{
			Service:     "quizzone",
			Component:   "session",
			EnableDebug: config.EnableDebug,
		}),
		container: state.NewContainer(models.IdleSnapshot()),
	}
}

// ===== INTENTS =====

// StartQuiz looks the quiz up in the catalog and starts it
func (s *sessionService) StartQuiz(ctx context.Context, quizID string) (models.SessionSnapshot, error) {
	quiz, ok := s.catalog.QuizByID(quizID)
	if !ok {
		s.logger.LogOperation(ctx, "start_quiz", quizID, "quiz", 0, ErrQuizNotFound)
		return s.Snapshot(), ErrQuizNotFound
	}
	return s.StartSession(ctx, quiz)
}

// StartSession replaces any running session with a fresh play-through of quiz
func (s *sessionService) StartSession(ctx context.Context, quiz *models.Quiz) (models.SessionSnapshot, error) {
	op := s.logger.WithOperation(ctx, "start_session")
	if quiz == nil {
		err := NewValidationError("quiz", "is required", nil)
		op.LogResult("", "quiz", err)
		return s.Snapshot(), err
	}
	if s.validator != nil {
		if err := s.validator.Validate(quiz); err != nil {
			op.LogResult(quiz.ID, "quiz", err)
			return s.Snapshot(), err
		}
	}

	now := s.clock.Now()

	s.mu.Lock()
	if s.closed {
		snapshot := s.container.Get()
		s.mu.Unlock()
		op.LogResult(quiz.ID, "quiz", ErrSessionClosed)
		return snapshot, ErrSessionClosed
	}

	previous := s.stopCountdownLocked()
	sess := newQuizSession(quiz, now)
	s.session = sess
	completed := sess.state == models.SessionCompleted
	if !completed && sess.remainingSeconds > 0 {
		s.startCountdownLocked(sess)
	}
	snapshot := s.publishLocked()
	s.mu.Unlock()

	previous.wait()

	s.publish(ctx, events.EventQuizStarted, events.QuizStartedEvent{
		SessionID:     sess.id,
		QuizID:        sess.quiz.ID,
		QuizTitle:     sess.quiz.Title,
		QuestionCount: len(sess.quiz.Questions),
		TimeLimit:     sess.quiz.EstimatedTimeMinutes * 60,
	}, now)

	if completed {
		s.recordCompletion(ctx, sess)
	}

	op.LogResult(quiz.ID, "quiz", nil)
	return snapshot, nil
}

// SelectAnswer marks index as the chosen option of the current question
func (s *sessionService) SelectAnswer(ctx context.Context, index int) (models.SessionSnapshot, error) {
	s.mu.Lock()
	sess, err := s.activeLocked()
	if err == nil && sess.state == models.SessionShowingExplanation {
		err = ErrAnswerAlreadySubmitted
	}
	if err == nil {
		question := sess.currentQuestion()
		if index < 0 || index >= len(question.Options) {
			err = ErrAnswerOutOfRange
		}
	}
	if err != nil {
		return s.rejectLocked(ctx, "select_answer", err)
	}

	selected := index
	sess.selected = &selected
	snapshot := s.publishLocked()
	s.mu.Unlock()
	return snapshot, nil
}

// SubmitAnswer grades the selected option and reveals the explanation
func (s *sessionService) SubmitAnswer(ctx context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	sess, err := s.activeLocked()
	if err == nil && sess.state == models.SessionShowingExplanation {
		err = ErrAnswerAlreadySubmitted
	}
	if err == nil && sess.selected == nil {
		err = ErrNoAnswerSelected
	}
	if err != nil {
		return s.rejectLocked(ctx, "submit_answer", err)
	}

	sess.submit()
	snapshot := s.publishLocked()
	s.mu.Unlock()

	s.logger.Logger().Debug("Answer submitted",
		"session_id", sess.id,
		"question_index", snapshot.QuestionIndex,
		"correct", snapshot.LastAnswerCorrect != nil && *snapshot.LastAnswerCorrect)
	return snapshot, nil
}

// NextQuestion advances past the explanation, completing the session after the last question
func (s *sessionService) NextQuestion(ctx context.Context) (models.SessionSnapshot, error) {
	s.mu.Lock()
	sess, err := s.activeLocked()
	if err == nil && sess.state != models.SessionShowingExplanation {
		err = ErrAnswerNotSubmitted
	}
	if err != nil {
		return s.rejectLocked(ctx, "next_question", err)
	}

	var stopped *countdown
	completed := sess.isLastQuestion()
	if completed {
		stopped = s.stopCountdownLocked()
		sess.complete(s.clock.Now())
	} else {
		sess.advance()
	}
	snapshot := s.publishLocked()
	s.mu.Unlock()

	stopped.wait()
	if completed {
		s.recordCompletion(ctx, sess)
	}
	return snapshot, nil
}

// ResetQuiz abandons any session and returns to idle. It never fails.
func (s *sessionService) ResetQuiz(ctx context.Context) models.SessionSnapshot {
	s.mu.Lock()
	stopped := s.stopCountdownLocked()
	quizID := ""
	if s.session != nil {
		quizID = s.session.quiz.ID
	}
	s.session = nil
	snapshot := s.publishLocked()
	s.mu.Unlock()

	stopped.wait()
	s.logger.LogOperation(ctx, "reset_quiz", quizID, "quiz", 0, nil)
	return snapshot
}

// ===== OBSERVATION =====

func (s *sessionService) Snapshot() models.SessionSnapshot {
	return s.container.Get()
}

// Result summarizes a completed session
func (s *sessionService) Result() (*models.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.state != models.SessionCompleted {
		return nil, ErrSessionNotCompleted
	}
	return s.session.result(), nil
}

// Subscribe registers fn for every published snapshot.
// fn runs on the goroutine that changed the state and must not call intents.
func (s *sessionService) Subscribe(fn func(models.SessionSnapshot)) func() {
	return s.container.Subscribe(fn)
}

// Close stops the countdown and rejects further sessions
func (s *sessionService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stopped := s.stopCountdownLocked()
	s.mu.Unlock()

	stopped.wait()
	return nil
}

// ===== HELPERS =====

// activeLocked returns the session when one is being played
func (s *sessionService) activeLocked() (*quizSession, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.session == nil || !s.session.state.InProgress() {
		return nil, ErrNoActiveSession
	}
	return s.session, nil
}

// rejectLocked releases the lock and reports a rejected intent
func (s *sessionService) rejectLocked(ctx context.Context, operation string, err error) (models.SessionSnapshot, error) {
	snapshot := s.container.Get()
	s.mu.Unlock()

	s.logger.LogOperation(ctx, operation, snapshot.QuizID, "quiz_session", 0, err)
	return snapshot, err
}

// publishLocked stores and broadcasts the snapshot of the current state
func (s *sessionService) publishLocked() models.SessionSnapshot {
	snapshot := buildSnapshot(s.session)
	s.container.Set(snapshot)
	return snapshot
}

// recordCompletion hands the finished session to the progress service once
func (s *sessionService) recordCompletion(ctx context.Context, sess *quizSession) {
	s.mu.Lock()
	if sess.progressRecorded {
		s.mu.Unlock()
		return
	}
	sess.progressRecorded = true
	quiz := sess.quiz
	score := sess.score
	s.mu.Unlock()

	if s.progress == nil {
		return
	}
	if _, err := s.progress.CompleteQuiz(ctx, &quiz, score); err != nil {
		s.logger.Logger().Error("Failed to record completed quiz",
			"session_id", sess.id,
			"quiz_id", quiz.ID,
			"error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, eventType events.EventType, data interface{}, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := events.NewProgressEvent(eventType, data, at)
	if err := s.publisher.PublishProgressEvent(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish session event",
			"event_type", eventType,
			"error", err)
	}
}

func newSessionID() string {
	return uuid.NewString()
}
