package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/models"
)

// ===== SESSION STATE =====

func newQuizSession(quiz *models.Quiz, now time.Time) *quizSession {
	sess := &quizSession{
		id:               newSessionID(),
		quiz:             *quiz,
		state:            models.SessionShowingQuestion,
		answers:          make([]models.AnswerRecord, 0, len(quiz.Questions)),
		remainingSeconds: max(0, quiz.EstimatedTimeMinutes*60),
		startedAt:        now,
	}
	sess.quiz.Questions = append([]models.Question(nil), quiz.Questions...)

	// Nothing to play; the session finishes with a zero score.
	if len(sess.quiz.Questions) == 0 {
		sess.complete(now)
	}
	return sess
}

func (sess *quizSession) currentQuestion() *models.Question {
	return &sess.quiz.Questions[sess.index]
}

func (sess *quizSession) isLastQuestion() bool {
	return sess.index >= len(sess.quiz.Questions)-1
}

func (sess *quizSession) submit() {
	question := sess.currentQuestion()
	selected := *sess.selected

	record := models.AnswerRecord{
		QuestionID:    question.ID,
		SelectedIndex: selected,
		Correct:       question.IsCorrect(selected),
	}
	if record.Correct {
		record.PointsAwarded = question.Points
		sess.score += question.Points
	}
	sess.answers = append(sess.answers, record)
	sess.state = models.SessionShowingExplanation
}

func (sess *quizSession) advance() {
	sess.index++
	sess.selected = nil
	sess.state = models.SessionShowingQuestion
}

func (sess *quizSession) complete(now time.Time) {
	sess.state = models.SessionCompleted
	sess.selected = nil
	sess.completedAt = now
}

func (sess *quizSession) result() *models.QuizResult {
	return models.NewQuizResult(
		&sess.quiz,
		sess.score,
		sess.completedAt.Sub(sess.startedAt),
		models.CountCorrect(sess.answers),
		sess.completedAt,
	)
}

// buildSnapshot renders the observable view of sess. A nil session is idle.
func buildSnapshot(sess *quizSession) models.SessionSnapshot {
	if sess == nil {
		return models.IdleSnapshot()
	}

	total := len(sess.quiz.Questions)
	snapshot := models.SessionSnapshot{
		SessionID:        sess.id,
		State:            sess.state,
		QuizID:           sess.quiz.ID,
		QuizTitle:        sess.quiz.Title,
		TotalQuestions:   total,
		Score:            sess.score,
		RemainingSeconds: sess.remainingSeconds,
		Completed:        sess.state == models.SessionCompleted,
	}

	switch {
	case sess.state.InProgress():
		reveal := sess.state == models.SessionShowingExplanation
		snapshot.Question = models.NewQuestionView(sess.currentQuestion(), reveal)
		snapshot.QuestionIndex = sess.index
		snapshot.ProgressFraction = float64(sess.index+1) / float64(total)
		snapshot.IsLastQuestion = sess.isLastQuestion()
		snapshot.SelectedAnswerIndex = models.CloneSelected(sess.selected)
		snapshot.ExplanationVisible = reveal
		if reveal && len(sess.answers) > 0 {
			correct := sess.answers[len(sess.answers)-1].Correct
			snapshot.LastAnswerCorrect = &correct
		}
	case sess.state == models.SessionCompleted:
		if total > 0 {
			snapshot.QuestionIndex = total - 1
		}
		snapshot.ProgressFraction = 1
	}
	return snapshot
}

// ===== COUNTDOWN =====

// countdown is the ticking goroutine of one session
type countdown struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// wait blocks until the goroutine has exited. Safe on nil.
func (cd *countdown) wait() {
	if cd == nil {
		return
	}
	<-cd.done
}

func (s *sessionService) startCountdownLocked(sess *quizSession) {
	ctx, cancel := context.WithCancel(context.Background())
	cd := &countdown{cancel: cancel, done: make(chan struct{})}
	s.countdown = cd

	ticker := s.clock.NewTicker(s.tick)
	go func() {
		defer close(cd.done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if !s.onTick(ctx, sess) {
					return
				}
			}
		}
	}()
}

// stopCountdownLocked cancels the running countdown. The caller waits on the
// returned countdown after releasing the lock.
func (s *sessionService) stopCountdownLocked() *countdown {
	cd := s.countdown
	s.countdown = nil
	if cd != nil {
		cd.cancel()
	}
	return cd
}

// onTick decrements the remaining time and reports whether ticking should continue.
// Reaching zero does not end the session.
func (s *sessionService) onTick(ctx context.Context, sess *quizSession) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil || s.session != sess || !sess.state.InProgress() {
		return false
	}
	if sess.remainingSeconds > 0 {
		sess.remainingSeconds--
		s.publishLocked()
	}
	return sess.remainingSeconds > 0
}
