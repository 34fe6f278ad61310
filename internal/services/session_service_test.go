package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/models"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

func playQuestion(t *testing.T, s SessionService, index int) models.SessionSnapshot {
	t.Helper()
	ctx := context.Background()

	_, err := s.SelectAnswer(ctx, index)
	require.NoError(t, err)
	_, err = s.SubmitAnswer(ctx)
	require.NoError(t, err)
	snapshot, err := s.NextQuestion(ctx)
	require.NoError(t, err)
	return snapshot
}

func TestSessionService_PlayThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("AllCorrect", func(t *testing.T) {
		f := newSessionFixture(t)

		snapshot, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)
		assert.Equal(t, models.SessionShowingQuestion, snapshot.State)
		assert.Equal(t, 2, snapshot.TotalQuestions)
		assert.InDelta(t, 0.5, snapshot.ProgressFraction, 1e-9)
		assert.False(t, snapshot.IsLastQuestion)
		assert.Equal(t, 60, snapshot.RemainingSeconds)
		require.NotNil(t, snapshot.Question)
		assert.Nil(t, snapshot.Question.CorrectAnswerIndex)
		assert.Empty(t, snapshot.Question.Explanation)

		playQuestion(t, f.session, 0)
		f.clock.Advance(45 * time.Second)
		snapshot = playQuestion(t, f.session, 1)

		assert.Equal(t, models.SessionCompleted, snapshot.State)
		assert.True(t, snapshot.Completed)
		assert.Equal(t, 30, snapshot.Score)

		result, err := f.session.Result()
		require.NoError(t, err)
		assert.Equal(t, 30, result.Score)
		assert.Equal(t, 30, result.TotalPossiblePoints)
		assert.Equal(t, 2, result.CorrectAnswerCount)
		assert.Equal(t, 2, result.TotalQuestionCount)
		assert.InDelta(t, 100, result.Percentage, 1e-9)
		assert.Equal(t, models.GradeAPlus, result.Grade)
		assert.InDelta(t, 45, result.TimeSpentSeconds, 1e-9)

		progress := f.service.Progress()
		assert.Equal(t, []string{"finance-1"}, progress.CompletedQuizIDs)
		assert.Equal(t, 30, progress.TotalScore)
	})

	t.Run("PartiallyCorrect", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)

		_, err = f.session.SelectAnswer(ctx, 0)
		require.NoError(t, err)
		snapshot, err := f.session.SubmitAnswer(ctx)
		require.NoError(t, err)
		require.NotNil(t, snapshot.LastAnswerCorrect)
		assert.True(t, *snapshot.LastAnswerCorrect)
		assert.True(t, snapshot.ExplanationVisible)
		require.NotNil(t, snapshot.Question.CorrectAnswerIndex)
		assert.Equal(t, 0, *snapshot.Question.CorrectAnswerIndex)
		assert.Equal(t, "Because f1", snapshot.Question.Explanation)

		snapshot, err = f.session.NextQuestion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.QuestionIndex)
		assert.True(t, snapshot.IsLastQuestion)
		assert.Nil(t, snapshot.SelectedAnswerIndex)
		assert.InDelta(t, 1.0, snapshot.ProgressFraction, 1e-9)

		_, err = f.session.SelectAnswer(ctx, 2)
		require.NoError(t, err)
		snapshot, err = f.session.SubmitAnswer(ctx)
		require.NoError(t, err)
		assert.False(t, *snapshot.LastAnswerCorrect)
		assert.Equal(t, 10, snapshot.Score)

		_, err = f.session.NextQuestion(ctx)
		require.NoError(t, err)

		result, err := f.session.Result()
		require.NoError(t, err)
		assert.Equal(t, 10, result.Score)
		assert.Equal(t, 1, result.CorrectAnswerCount)
		assert.InDelta(t, 33.33, result.Percentage, 0.01)
		assert.Equal(t, models.GradeD, result.Grade)
		assert.Equal(t, 10, f.service.Progress().TotalScore)
	})

	t.Run("EmptyQuizCompletesImmediately", func(t *testing.T) {
		f := newSessionFixture(t)
		empty := newQuiz("empty", models.CategoryPuzzle)

		snapshot, err := f.session.StartSession(ctx, &empty)
		require.NoError(t, err)
		assert.Equal(t, models.SessionCompleted, snapshot.State)
		assert.Zero(t, f.clock.ActiveTickers())

		result, err := f.session.Result()
		require.NoError(t, err)
		assert.Zero(t, result.Score)
		assert.Zero(t, result.Percentage)
		assert.Equal(t, []string{"empty"}, f.service.Progress().CompletedQuizIDs)
	})
}

func TestSessionService_RejectedIntents(t *testing.T) {
	ctx := context.Background()

	t.Run("Idle", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := f.session.SelectAnswer(ctx, 0)
		assert.ErrorIs(t, err, ErrNoActiveSession)
		_, err = f.session.SubmitAnswer(ctx)
		assert.ErrorIs(t, err, ErrNoActiveSession)
		snapshot, err := f.session.NextQuestion(ctx)
		assert.ErrorIs(t, err, ErrNoActiveSession)
		assert.Equal(t, models.SessionIdle, snapshot.State)

		_, err = f.session.Result()
		assert.ErrorIs(t, err, ErrSessionNotCompleted)
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		f := newSessionFixture(t)

		snapshot, err := f.session.StartQuiz(ctx, "missing")
		assert.ErrorIs(t, err, ErrQuizNotFound)
		assert.Equal(t, models.SessionIdle, snapshot.State)
	})

	t.Run("InvalidQuiz", func(t *testing.T) {
		f := newSessionFixture(t)
		broken := newQuiz("broken", models.CategoryFinance, newQuestion("b1", 10, 7))

		_, err := f.session.StartSession(ctx, &broken)
		assert.True(t, IsValidation(err))
		assert.Equal(t, models.SessionIdle, f.session.Snapshot().State)
	})

	t.Run("OutOfRangeSelection", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)
		_, err = f.session.SelectAnswer(ctx, 1)
		require.NoError(t, err)
		before := f.session.Snapshot()

		for _, index := range []int{5, 3, -1} {
			snapshot, err := f.session.SelectAnswer(ctx, index)
			assert.ErrorIs(t, err, ErrAnswerOutOfRange)
			assert.Equal(t, before, snapshot)
		}
		assert.Equal(t, before, f.session.Snapshot())
	})

	t.Run("OutOfOrder", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)

		_, err = f.session.SubmitAnswer(ctx)
		assert.ErrorIs(t, err, ErrNoAnswerSelected)
		_, err = f.session.NextQuestion(ctx)
		assert.ErrorIs(t, err, ErrAnswerNotSubmitted)

		_, err = f.session.SelectAnswer(ctx, 0)
		require.NoError(t, err)
		_, err = f.session.SubmitAnswer(ctx)
		require.NoError(t, err)
		before := f.session.Snapshot()

		_, err = f.session.SubmitAnswer(ctx)
		assert.ErrorIs(t, err, ErrAnswerAlreadySubmitted)
		_, err = f.session.SelectAnswer(ctx, 1)
		assert.ErrorIs(t, err, ErrAnswerAlreadySubmitted)
		assert.Equal(t, before, f.session.Snapshot())
		assert.Equal(t, 10, before.Score)
	})

	t.Run("AfterCompletion", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-2")
		require.NoError(t, err)
		playQuestion(t, f.session, 0)

		_, err = f.session.NextQuestion(ctx)
		assert.ErrorIs(t, err, ErrNoActiveSession)
		assert.Equal(t, []string{"finance-2"}, f.service.Progress().CompletedQuizIDs)
	})
}

func TestSessionService_ResetAndRestart(t *testing.T) {
	ctx := context.Background()

	t.Run("ResetReturnsToIdle", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)
		_, err = f.session.SelectAnswer(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, 1, f.clock.ActiveTickers())

		snapshot := f.session.ResetQuiz(ctx)
		assert.Equal(t, models.IdleSnapshot(), snapshot)
		assert.Zero(t, f.clock.ActiveTickers())
		assert.Empty(t, f.service.Progress().CompletedQuizIDs)

		f.clock.Tick()
		assert.Equal(t, models.IdleSnapshot(), f.session.Snapshot())
	})

	t.Run("ResetWhenIdle", func(t *testing.T) {
		f := newSessionFixture(t)
		assert.Equal(t, models.IdleSnapshot(), f.session.ResetQuiz(ctx))
	})

	t.Run("StartReplacesRunningSession", func(t *testing.T) {
		f := newSessionFixture(t)
		first, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)
		_, err = f.session.SelectAnswer(ctx, 0)
		require.NoError(t, err)

		second, err := f.session.StartQuiz(ctx, "movies-1")
		require.NoError(t, err)
		assert.NotEqual(t, first.SessionID, second.SessionID)
		assert.Equal(t, "movies-1", second.QuizID)
		assert.Nil(t, second.SelectedAnswerIndex)
		assert.Zero(t, second.Score)
		assert.Equal(t, 1, f.clock.ActiveTickers())
		assert.Len(t, f.publisher.EventsOfType(events.EventQuizStarted), 2)
	})

	t.Run("ClosedEngine", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)

		require.NoError(t, f.session.Close())
		assert.Zero(t, f.clock.ActiveTickers())

		_, err = f.session.StartQuiz(ctx, "movies-1")
		assert.ErrorIs(t, err, ErrSessionClosed)
		_, err = f.session.SelectAnswer(ctx, 0)
		assert.ErrorIs(t, err, ErrSessionClosed)
		assert.NoError(t, f.session.Close())
	})
}

func TestSessionService_Countdown(t *testing.T) {
	ctx := context.Background()

	t.Run("TicksDownWhilePlaying", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-1")
		require.NoError(t, err)

		f.clock.Tick()
		f.clock.Tick()
		assert.Eventually(t, func() bool {
			return f.session.Snapshot().RemainingSeconds == 58
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("StopsAtZeroWithoutEndingTheSession", func(t *testing.T) {
		f := newSessionFixture(t)
		quick := newQuiz("quick", models.CategoryMixed, newQuestion("q1", 10, 0))
		quick.EstimatedTimeMinutes = 1

		_, err := f.session.StartSession(ctx, &quick)
		require.NoError(t, err)

		for i := 0; i < 60; i++ {
			f.clock.Tick()
		}
		assert.Eventually(t, func() bool {
			return f.clock.ActiveTickers() == 0
		}, time.Second, 5*time.Millisecond)

		snapshot := f.session.Snapshot()
		assert.Zero(t, snapshot.RemainingSeconds)
		assert.Equal(t, models.SessionShowingQuestion, snapshot.State)

		snapshot = playQuestion(t, f.session, 0)
		assert.Equal(t, models.SessionCompleted, snapshot.State)
	})

	t.Run("CompletionStopsTicker", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.session.StartQuiz(ctx, "finance-2")
		require.NoError(t, err)
		require.Equal(t, 1, f.clock.ActiveTickers())

		playQuestion(t, f.session, 0)
		assert.Zero(t, f.clock.ActiveTickers())

		f.clock.Tick()
		assert.Equal(t, 60, f.session.Snapshot().RemainingSeconds)
	})

	t.Run("NoTimeLimit", func(t *testing.T) {
		f := newSessionFixture(t)
		untimed := newQuiz("untimed", models.CategoryMixed, newQuestion("u1", 10, 0))
		untimed.EstimatedTimeMinutes = 0

		_, err := f.session.StartSession(ctx, &untimed)
		require.NoError(t, err)
		assert.Zero(t, f.clock.ActiveTickers())
	})
}

func TestSessionService_Subscribe(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t)

	var mu sync.Mutex
	var states []models.SessionState
	unsubscribe := f.session.Subscribe(func(s models.SessionSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
	})
	defer unsubscribe()

	_, err := f.session.StartQuiz(ctx, "finance-2")
	require.NoError(t, err)
	playQuestion(t, f.session, 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.SessionState{
		models.SessionShowingQuestion,
		models.SessionShowingQuestion,
		models.SessionShowingExplanation,
		models.SessionCompleted,
	}, states)
}

func TestServiceManager(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(testStart)
	repo := memoryProgressRepository()
	cat := testCatalog(t, defaultTestQuizzes()...)
	publisher := events.NewMockEventPublisher(testLogger())

	manager := NewServiceManager(cat, repo, publisher, testLogger(), validator.New(), ManagerConfig{
		Location: time.UTC,
		Clock:    clock,
	})
	assert.Same(t, clock, manager.Clock())
	assert.Equal(t, cat, manager.Catalog())

	_, err := manager.Session().StartQuiz(ctx, "movies-1")
	require.NoError(t, err)
	playQuestion(t, manager.Session(), 2)

	require.NoError(t, manager.Close(ctx))

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"movies-1"}, stored.CompletedQuizIDs)
	assert.Equal(t, 10, stored.TotalScore)
}
